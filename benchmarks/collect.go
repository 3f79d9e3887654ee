package benchmarks

import (
	"context"
	"fmt"

	"github.com/ronaldiscool/ReAgent/replay"
	"github.com/ronaldiscool/ReAgent/types"
	"github.com/spf13/cobra"
)

// Collect runs a random policy on an environment and pushes the raw
// trajectories to Redis, as training data for the world model
func Collect(ctx context.Context, env string, redisAddr, key string, episodes, horizon int) error {
	inner, err := buildEnv(env, false, 0, 0, 0)
	if err != nil {
		return err
	}
	buffer := replay.NewRedisBuffer(redisAddr, key)
	defer buffer.Close()

	agent := types.NewAgent(&types.AgentConfig{
		Episodes:    episodes,
		Horizon:     horizon,
		Policy:      types.NewRandomPolicy(),
		Environment: replay.NewCollector(ctx, inner, buffer),
	})
	if err := agent.Run(); err != nil {
		return err
	}

	n, err := buffer.Len(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Collected %d episodes, %d trajectories buffered\n", episodes, n)
	return nil
}

func CollectCommand() *cobra.Command {
	var env string
	var redisAddr string
	var key string

	cmd := &cobra.Command{
		Use: "collect",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Collect(cmdContext(), env, redisAddr, key, episodes, horizon)
		},
	}
	cmd.PersistentFlags().StringVar(&env, "env", "corridor", "Environment to collect from")
	cmd.PersistentFlags().StringVar(&redisAddr, "redis", "127.0.0.1:6379", "Redis address")
	cmd.PersistentFlags().StringVar(&key, "key", "trajectories", "Redis list key for the trajectories")
	return cmd
}
