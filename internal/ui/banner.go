package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibseq/internal/format"
)

// BannerInfo is what the startup banner shows.
type BannerInfo struct {
	Version   string
	Addr      string
	Route     string
	CacheSize int
	Workers   int
	Warm      bool
	Tracing   string
	Startup   time.Duration
}

// RenderBanner draws a bordered summary of the running service.
func RenderBanner(info BannerInfo) string {
	p := GetCurrentPalette()
	label := lipgloss.NewStyle().Foreground(p.Label).Width(10)
	value := lipgloss.NewStyle().Foreground(p.Value)

	cache := format.FormatCount(info.CacheSize) + " terms"
	if info.Warm {
		cache += " (warm-up)"
	}
	rows := [][2]string{
		{"listen", info.Addr},
		{"route", info.Route + "<n>"},
		{"cache", cache},
		{"workers", fmt.Sprint(info.Workers)},
		{"tracing", info.Tracing},
		{"metrics", "/metrics"},
	}

	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(p.Title).
		Render("fibseq " + info.Version)
	b.WriteString(title)
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(label.Render(r[0]))
		b.WriteString(value.Render(r[1]))
		b.WriteByte('\n')
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.Ready).
		Render("ready in " + format.FormatExecutionDuration(info.Startup)))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	return box.Render(b.String())
}
