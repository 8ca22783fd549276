package main

import (
	"fmt"
	"strings"

	"github.com/danmuck/kproto/internal/config"
	"github.com/danmuck/kproto/internal/protocol/ipc"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// autoID asks compose to generate a request id.
const autoID = "auto"

type composeResult struct {
	Kind   string      `json:"kind" yaml:"kind"`
	Type   string      `json:"type" yaml:"type"`
	Frames []frameView `json:"frames" yaml:"frames"`
}

func (a *app) newComposeCmd() *cobra.Command {
	var kind, payload, platform, id string
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Build the frames for a message kind",
		Example: `  kproto compose --kind loadurl --payload https://example.com --platform web --id auto
  kproto compose --kind keepalive -o hex`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("platform") {
				platform = a.cfg.Platform
			}
			if !cmd.Flags().Changed("id") {
				id = a.cfg.ID
			}
			if id == autoID {
				id = uuid.NewString()
			}
			frames, err := ipc.Compose(kind, payload, platform, id)
			if err != nil {
				return err
			}
			code, _ := ipc.Kind(kind).Code()
			if a.cfg.Output == config.OutputHex {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), formatHexFrames(frames))
				return err
			}
			var sb strings.Builder
			for i, f := range frames {
				fmt.Fprintf(&sb, "[%d] %q\n", i, f)
			}
			return render(cmd.OutOrStdout(), a.cfg.Output, sb.String(), composeResult{
				Kind:   kind,
				Type:   code.String(),
				Frames: viewFrames(frames),
			})
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "message kind (see `kproto kinds`)")
	cmd.Flags().StringVarP(&payload, "payload", "p", "", "payload text")
	cmd.Flags().StringVar(&platform, "platform", "", "platform name (default from config)")
	cmd.Flags().StringVar(&id, "id", "", "request id, or \"auto\" to generate one")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}
