// Package report renders the end-of-run summary: how often each variant was
// drawn and which rarity weights were configured.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/xtding233/nftgen/internal/rarity"
)

// Theme holds the colours of the summary.
type Theme struct {
	Title  lipgloss.Color
	Layer  lipgloss.Color
	Hint   lipgloss.Color
	Border lipgloss.Color
}

var defaultTheme = Theme{
	Title:  lipgloss.Color("#00D787"), // green
	Layer:  lipgloss.Color("#5FAFD7"), // light blue
	Hint:   lipgloss.Color("#6C6C6C"), // dim gray
	Border: lipgloss.Color("#3A3A3A"), // dark gray
}

func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Title).Bold(true)
}

func (t Theme) layerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Layer).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// VariantStat is one row of a layer table.
type VariantStat struct {
	ID       string
	Draws    int
	Weight   float64
	Expected float64 // share of draws the weight predicts
}

// LayerStat summarises the draws of one layer. PValue is the chi-square
// goodness of fit of the observed draws against the weights; 1 when the layer
// has a single variant or no draws.
type LayerStat struct {
	Name      string
	Draws     int
	Variants  []VariantStat
	ChiSquare float64
	PValue    float64
}

// Summary is everything the report prints.
type Summary struct {
	Generated       int
	Requested       int
	Target          int // Requested clamped to MaxCombinations
	MaxCombinations int
	OutputDir       string
	Attempts        int
	Layers          []LayerStat
	LayerNames      []string           // paint order
	Weights         rarity.WeightTable // as configured
}

// BuildLayers computes per-layer statistics in layer order, listing variants
// in catalog order.
func BuildLayers(src rarity.VariantSource, counts rarity.Counts, weights rarity.WeightTable) []LayerStat {
	names := src.LayerNames()
	out := make([]LayerStat, 0, len(names))
	for _, name := range names {
		ids := src.VariantIDs(name)
		ls := LayerStat{Name: name, Draws: counts.Total(name), PValue: 1}

		total := 0.0
		for _, id := range ids {
			total += weights.Weight(name, id)
		}
		obs := make([]float64, len(ids))
		exp := make([]float64, len(ids))
		for i, id := range ids {
			w := weights.Weight(name, id)
			vs := VariantStat{
				ID:       id,
				Draws:    counts.Get(name, id),
				Weight:   w,
				Expected: w / total,
			}
			ls.Variants = append(ls.Variants, vs)
			obs[i] = float64(vs.Draws)
			exp[i] = vs.Expected * float64(ls.Draws)
		}
		if len(ids) > 1 && ls.Draws > 0 {
			ls.ChiSquare = stat.ChiSquare(obs, exp)
			ls.PValue = 1 - distuv.ChiSquared{K: float64(len(ids) - 1)}.CDF(ls.ChiSquare)
		}
		out = append(out, ls)
	}
	return out
}

// Render writes the summary to w.
func Render(w io.Writer, s Summary) error {
	return renderWith(w, s, defaultTheme)
}

func renderWith(w io.Writer, s Summary, theme Theme) error {
	var b strings.Builder
	title := cases.Title(language.Und)

	b.WriteString(theme.titleStyle().Render(
		fmt.Sprintf("%d NFTs have been generated and saved in %s", s.Generated, s.OutputDir)))
	b.WriteString("\n")
	if s.Target > 0 && s.Target < s.Requested {
		b.WriteString(theme.hintStyle().Render(
			fmt.Sprintf("requested %d, limited to the %d unique combinations available", s.Requested, s.MaxCombinations)))
		b.WriteString("\n")
	}
	if s.Generated < s.Target {
		b.WriteString(theme.hintStyle().Render(
			fmt.Sprintf("stopped after %d of %d NFTs", s.Generated, s.Target)))
		b.WriteString("\n")
	}
	if s.Attempts > 0 {
		b.WriteString(fmt.Sprintf("Combinations drawn: %d (%d rejected as duplicates)\n",
			s.Attempts, s.Attempts-s.Generated))
	}

	b.WriteString("\nVariation Counts:\n")
	for _, ls := range s.Layers {
		b.WriteString(theme.layerStyle().Render(title.String(ls.Name) + ":"))
		b.WriteString("\n")
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
			Headers("Variant", "Draws", "Weight", "Expected")
		for _, v := range ls.Variants {
			t.Row(v.ID,
				strconv.Itoa(v.Draws),
				formatWeight(v.Weight),
				fmt.Sprintf("%.1f%%", v.Expected*100))
		}
		b.WriteString(t.String())
		b.WriteString("\n")
		if len(ls.Variants) > 1 && ls.Draws > 0 {
			b.WriteString(theme.hintStyle().Render(
				fmt.Sprintf("  chi-square %.3f, p=%.3f over %d draws", ls.ChiSquare, ls.PValue, ls.Draws)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\nRarity Weights Used:\n")
	layers := s.LayerNames
	if len(layers) == 0 {
		for _, ls := range s.Layers {
			layers = append(layers, ls.Name)
		}
	}
	for _, name := range layers {
		variants, ok := s.Weights[name]
		if !ok {
			continue
		}
		b.WriteString(theme.layerStyle().Render(title.String(name) + ":"))
		b.WriteString("\n")
		for _, v := range sortedKeys(variants) {
			b.WriteString(fmt.Sprintf("  %s: weight %s\n", v, formatWeight(variants[v])))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
