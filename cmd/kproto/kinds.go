package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/danmuck/kproto/internal/protocol/ipc"
	"github.com/danmuck/kproto/internal/protocol/schema"
	"github.com/spf13/cobra"
)

type kindView struct {
	Kind    string   `json:"kind" yaml:"kind"`
	Code    string   `json:"code" yaml:"code"`
	Type    string   `json:"type" yaml:"type"`
	Payload bool     `json:"payload" yaml:"payload"`
	Layout  []string `json:"layout" yaml:"layout"`
}

func (a *app) newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List message kinds and their type codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views := make([]kindView, 0, len(ipc.Kinds()))
			for _, k := range ipc.Kinds() {
				code, err := k.Code()
				if err != nil {
					return err
				}
				layout, err := ipc.Layout(k, "<payload>", "<platform>", "<id>")
				if err != nil {
					return err
				}
				parts := make([]string, len(layout))
				for i, f := range layout {
					parts[i] = f.String()
				}
				views = append(views, kindView{
					Kind:    string(k),
					Code:    fmt.Sprintf("0x%02x", uint8(code)),
					Type:    code.String(),
					Payload: k.CarriesPayload(),
					Layout:  parts,
				})
			}

			var sb strings.Builder
			w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tCODE\tTYPE\tFRAMES")
			for _, v := range views {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.Kind, v.Code, v.Type, strings.Join(v.Layout, " "))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.cfg.Output, sb.String(), views)
		},
	}
}

type typeView struct {
	Code   string   `json:"code" yaml:"code"`
	Type   string   `json:"type" yaml:"type"`
	Fields []string `json:"fields" yaml:"fields"`
}

func (a *app) newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List typed message layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var views []typeView
			for code := ipc.TypeCode(0); code.Known(); code++ {
				specs, _ := schema.Fields(code)
				fields := make([]string, len(specs))
				for i, s := range specs {
					name := s.Name
					if !s.Required {
						name += "?"
					}
					fields[i] = fmt.Sprintf("%d:%s", s.Index, name)
				}
				views = append(views, typeView{
					Code:   fmt.Sprintf("0x%02x", uint8(code)),
					Type:   code.String(),
					Fields: fields,
				})
			}

			var sb strings.Builder
			w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tTYPE\tFIELDS")
			for _, v := range views {
				fmt.Fprintf(w, "%s\t%s\t%s\n", v.Code, v.Type, strings.Join(v.Fields, " "))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.cfg.Output, sb.String(), views)
		},
	}
}
