package benchmarks

import (
	"fmt"

	"github.com/ronaldiscool/ReAgent/envs"
	"github.com/ronaldiscool/ReAgent/policies"
	"github.com/ronaldiscool/ReAgent/stateembed"
	"github.com/ronaldiscool/ReAgent/types"
	"github.com/ronaldiscool/ReAgent/worldmodel"
	"github.com/spf13/cobra"
)

// Corridor compares a tabular policy on the raw aliased observations of
// the corridor against the same policy on state embedded observations
func Corridor(episodes, horizon int, saveFile string, runs, length, seqLen, hiddens, gaussians int) error {
	c := types.NewComparison(&types.ComparisonConfig{
		Runs:         runs,
		Episodes:     episodes,
		Horizon:      horizon,
		RecordPath:   saveFile,
		RecordTraces: false,
	})
	c.AddAnalysis("returns", types.NewReturnAnalyzer(), types.ReturnPlotter(saveFile, 100))

	c.AddExperiment(types.NewExperiment(
		"Raw-SoftMaxQ",
		policies.NewSoftMaxQPolicy(0.1, 0.99, 0.5),
		envs.NewCorridorEnv(length),
	))

	inner := envs.NewCorridorEnv(length)
	model := worldmodel.NewMDNRNN(
		inner.ObservationSpace().Dim(),
		inner.ActionSpace().Dim(),
		hiddens, gaussians, 42,
	)
	embedded, err := stateembed.New(inner, model, seqLen)
	if err != nil {
		return fmt.Errorf("building embedded environment: %w", err)
	}
	c.AddExperiment(types.NewExperiment(
		"Embedded-SoftMaxQ",
		policies.NewSoftMaxQPolicy(0.1, 0.99, 0.5),
		embedded,
	))

	return c.Run(cmdContext())
}

func CorridorCommand() *cobra.Command {
	var length int
	var seqLen int
	var hiddens int
	var gaussians int

	cmd := &cobra.Command{
		Use: "corridor",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Corridor(episodes, horizon, saveFile, runs, length, seqLen, hiddens, gaussians)
		},
	}
	cmd.PersistentFlags().IntVar(&length, "length", 5, "Length of the corridor")
	cmd.PersistentFlags().IntVar(&seqLen, "seq-len", 8, "Maximum history window of the embedding")
	cmd.PersistentFlags().IntVar(&hiddens, "hiddens", 16, "Hidden state size of the world model")
	cmd.PersistentFlags().IntVar(&gaussians, "gaussians", 3, "Mixture components of the world model")
	return cmd
}
