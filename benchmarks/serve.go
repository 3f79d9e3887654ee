package benchmarks

import (
	"fmt"

	"github.com/ronaldiscool/ReAgent/envs"
	"github.com/ronaldiscool/ReAgent/envserver"
	"github.com/ronaldiscool/ReAgent/stateembed"
	"github.com/ronaldiscool/ReAgent/worldmodel"
	"github.com/spf13/cobra"
)

// buildEnv constructs one of the named environments, optionally wrapped
// with the state embedding
func buildEnv(name string, embed bool, seqLen, hiddens, gaussians int) (envs.Environment, error) {
	var inner envs.Environment
	switch name {
	case "corridor":
		inner = envs.NewCorridorEnv(5)
	case "drift":
		inner = envs.NewDriftEnv()
	default:
		return nil, fmt.Errorf("unknown environment %q", name)
	}
	if !embed {
		return inner, nil
	}
	model := worldmodel.NewMDNRNN(
		inner.ObservationSpace().Dim(),
		inner.ActionSpace().Dim(),
		hiddens, gaussians, 42,
	)
	return stateembed.New(inner, model, seqLen)
}

func ServeCommand() *cobra.Command {
	var addr string
	var env string
	var embed bool
	var seqLen int
	var hiddens int
	var gaussians int

	cmd := &cobra.Command{
		Use: "serve",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv(env, embed, seqLen, hiddens, gaussians)
			if err != nil {
				return err
			}
			server := envserver.NewServer(addr, e)
			server.Start()
			fmt.Printf("Serving %s on %s\n", env, addr)
			<-cmdContext().Done()
			server.Stop()
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&addr, "addr", "127.0.0.1:7000", "Address to serve the environment on")
	cmd.PersistentFlags().StringVar(&env, "env", "corridor", "Environment to serve")
	cmd.PersistentFlags().BoolVar(&embed, "embed", true, "Wrap the environment with the state embedding")
	cmd.PersistentFlags().IntVar(&seqLen, "seq-len", 8, "Maximum history window of the embedding")
	cmd.PersistentFlags().IntVar(&hiddens, "hiddens", 16, "Hidden state size of the world model")
	cmd.PersistentFlags().IntVar(&gaussians, "gaussians", 3, "Mixture components of the world model")
	return cmd
}
