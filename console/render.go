package console

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dmelo/ec2console/types"
)

// renderInstances prints one table row per instance.
func renderInstances(out io.Writer, instances []types.InstanceSummary) {
	if len(instances) == 0 {
		fmt.Fprintln(out, "Nenhuma instância encontrada.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOME\tESTADO\tTIPO\tAZ\tLANÇAMENTO")
	for _, instance := range instances {
		launched := "-"
		if !instance.LaunchTime.IsZero() {
			launched = instance.LaunchTime.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			instance.ID, instance.Name, instance.State, instance.InstanceType,
			instance.AvailabilityZone, launched)
	}
	_ = w.Flush()
}

// renderTags prints the tags of a single instance.
func renderTags(out io.Writer, id string, tags []types.Tag) {
	if len(tags) == 0 {
		fmt.Fprintf(out, "Nenhuma tag em %s.\n", id)
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHAVE\tVALOR")
	for _, tag := range tags {
		fmt.Fprintf(w, "%s\t%s\n", tag.Key, tag.Value)
	}
	_ = w.Flush()
}
