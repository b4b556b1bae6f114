package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphbrot/internal/config"
	"github.com/matzehuels/glyphbrot/pkg/fractal"
)

// regionsCommand creates the command that lists named viewports.
func (c *CLI) regionsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List named viewports usable with --region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			regions := c.Config.RegionTable().All()
			if asJSON {
				return writeRegionsJSON(cmd.OutOrStdout(), regions)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), regionsTable(regions))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print regions as JSON")
	return cmd
}

func writeRegionsJSON(w io.Writer, regions []fractal.Region) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(regions)
}

// regionsTable renders regions as a bordered table.
func regionsTable(regions []fractal.Region) string {
	rows := make([][]string, len(regions))
	for i, r := range regions {
		vp := r.Viewport
		rows[i] = []string{
			r.Name,
			fmt.Sprintf("%g … %g", vp.XMin, vp.XMax),
			fmt.Sprintf("%g … %g", vp.YMin, vp.YMax),
			r.Description,
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Region", "Real", "Imaginary", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return cell.Foreground(colorCyan).Bold(true)
			case col == 1 || col == 2:
				return cell.Foreground(colorWhite)
			default:
				return cell.Foreground(colorGray)
			}
		})

	return t.Render()
}

// completeRegions offers region names for --region.
func (c *CLI) completeRegions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		cfg = config.Default()
	}
	return cfg.RegionTable().Names(), cobra.ShellCompDirectiveNoFileComp
}
