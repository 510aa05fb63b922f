package render

import (
	"fmt"
	"strings"

	"BCVMonitor/internal/dashboard"
)

// Text formats a view as a Telegram HTML message.
func Text(v dashboard.View) string {
	var b strings.Builder

	b.WriteString("💱 <b>Tasas oficiales BCV</b>\n")
	if line := LastUpdate(v.Record, v.UpdatedAt); line != "" {
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	if v.Notice != "" {
		b.WriteString(fmt.Sprintf("⚠️ %s\n\n", v.Notice))
	}

	cards := Cards(v.Record)
	if len(cards) == 0 {
		b.WriteString("Sin datos disponibles.\n")
		return b.String()
	}
	for _, c := range cards {
		b.WriteString(fmt.Sprintf("%s <b>%s</b> (%s)\n", c.Arrow, c.Title, c.Code))
		b.WriteString(fmt.Sprintf("   %s %s\n", c.Price, c.Label))
		b.WriteString(fmt.Sprintf("   %s | Anterior: %s\n", c.Change, c.Previous))
	}

	if v.AutoRefresh {
		b.WriteString("\n🔄 Auto-actualización activa")
	} else {
		b.WriteString("\n⏸ Auto-actualización en pausa")
	}
	return b.String()
}
