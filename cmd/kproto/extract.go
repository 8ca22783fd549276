package main

import (
	"fmt"

	"github.com/danmuck/kproto/internal/protocol/ipc"
	"github.com/danmuck/kproto/internal/protocol/message"
	"github.com/spf13/cobra"
)

// frameInput is the shared --hex / --type input of extract and decode.
type frameInput struct {
	hexFrames string
	typeName  string
}

func (in *frameInput) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&in.hexFrames, "hex", "", "all frames as comma-separated hex, frame 0 first")
	cmd.Flags().StringVarP(&in.typeName, "type", "t", "", "type code (IPC_* name or number); args are the frames after it")
	cmd.MarkFlagsMutuallyExclusive("hex", "type")
	cmd.MarkFlagsOneRequired("hex", "type")
}

func (in *frameInput) frames(args []string) ([][]byte, error) {
	if in.hexFrames != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("--hex takes no positional frames")
		}
		return parseHexFrames(in.hexFrames)
	}
	code, err := parseTypeCode(in.typeName)
	if err != nil {
		return nil, err
	}
	return framesFromArgs(code, args), nil
}

type extractResult struct {
	Type    string `json:"type" yaml:"type"`
	Payload string `json:"payload" yaml:"payload"`
}

func (a *app) newExtractCmd() *cobra.Command {
	var in frameInput
	cmd := &cobra.Command{
		Use:   "extract [frames...]",
		Short: "Print the payload carried by a message",
		Example: `  kproto extract --type IPC_PLATFORM_INFO web req-1 'a%2Cb' loadurl
  kproto extract --hex ,06,776562,,6869,696e666f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			frames, err := in.frames(args)
			if err != nil {
				return err
			}
			payload, err := ipc.ExtractFrames(frames)
			if err != nil {
				return err
			}
			code := ipc.TypeCode(frames[ipc.IndexType][0])
			return render(cmd.OutOrStdout(), a.cfg.Output, payload+"\n", extractResult{
				Type:    code.String(),
				Payload: payload,
			})
		},
	}
	in.bind(cmd)
	return cmd
}

type decodeResult struct {
	Type    string      `json:"type" yaml:"type"`
	Summary string      `json:"summary" yaml:"summary"`
	Frames  []frameView `json:"frames" yaml:"frames"`
}

func (a *app) newDecodeCmd() *cobra.Command {
	var in frameInput
	var lenient bool
	cmd := &cobra.Command{
		Use:   "decode [frames...]",
		Short: "Decode frames into a typed message",
		Example: `  kproto decode --type IPC_PLATFORM_ERROR discord e-1 logicp "rate limited"
  kproto decode --hex ,00,6b6971,31 -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			frames, err := in.frames(args)
			if err != nil {
				return err
			}
			decode := message.Decode
			if lenient {
				decode = message.DecodeLenient
			}
			msg, err := decode(frames)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.cfg.Output, msg.String()+"\n", decodeResult{
				Type:    msg.Type().String(),
				Summary: msg.String(),
				Frames:  viewFrames(msg.Frames()),
			})
		},
	}
	in.bind(cmd)
	cmd.Flags().BoolVar(&lenient, "lenient", false, "keep unknown type codes as raw messages")
	return cmd
}
