package benchmarks

import (
	"fmt"

	"github.com/ronaldiscool/ReAgent/envs"
	"github.com/ronaldiscool/ReAgent/stateembed"
	"github.com/ronaldiscool/ReAgent/types"
	"github.com/ronaldiscool/ReAgent/worldmodel"
	"github.com/spf13/cobra"
)

// Drift runs a random policy on the continuous drift environment, both
// on raw observations and through the state embedding wrapper
func Drift(episodes, horizon int, saveFile string, runs, seqLen, hiddens, gaussians int) error {
	c := types.NewComparison(&types.ComparisonConfig{
		Runs:         runs,
		Episodes:     episodes,
		Horizon:      horizon,
		RecordPath:   saveFile,
		RecordTraces: false,
	})
	c.AddAnalysis("returns", types.NewReturnAnalyzer(), types.ReturnPlotter(saveFile, 100))

	c.AddExperiment(types.NewExperiment(
		"Raw-Random",
		types.NewRandomPolicy(),
		envs.NewDriftEnv(),
	))

	inner := envs.NewDriftEnv()
	model := worldmodel.NewMDNRNN(
		inner.ObservationSpace().Dim(),
		inner.ActionSpace().Dim(),
		hiddens, gaussians, 42,
	)
	embedded, err := stateembed.New(inner, model, seqLen, stateembed.WithStateBounds(-10, 10))
	if err != nil {
		return fmt.Errorf("building embedded environment: %w", err)
	}
	c.AddExperiment(types.NewExperiment(
		"Embedded-Random",
		types.NewRandomPolicy(),
		embedded,
	))

	return c.Run(cmdContext())
}

func DriftCommand() *cobra.Command {
	var seqLen int
	var hiddens int
	var gaussians int

	cmd := &cobra.Command{
		Use: "drift",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Drift(episodes, horizon, saveFile, runs, seqLen, hiddens, gaussians)
		},
	}
	cmd.PersistentFlags().IntVar(&seqLen, "seq-len", 8, "Maximum history window of the embedding")
	cmd.PersistentFlags().IntVar(&hiddens, "hiddens", 16, "Hidden state size of the world model")
	cmd.PersistentFlags().IntVar(&gaussians, "gaussians", 3, "Mixture components of the world model")
	return cmd
}
