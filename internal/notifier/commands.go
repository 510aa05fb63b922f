package notifier

import (
	"context"
	"strings"

	"BCVMonitor/internal/dashboard"
	"BCVMonitor/internal/render"
)

// Dashboard is the part of the controller chat commands drive.
type Dashboard interface {
	Snapshot() dashboard.View
	Refresh(ctx context.Context) bool
	SetAutoRefresh(enabled bool)
}

const helpText = "Comandos disponibles:\n• /tasas\n• /refresh\n• /auto on | /auto off"

// Commands answers chat commands against a dashboard.
func Commands(d Dashboard) CommandHandler {
	return func(ctx context.Context, command string) string {
		fields := strings.Fields(strings.ToLower(command))
		if len(fields) == 0 {
			return helpText
		}
		switch fields[0] {
		case "/tasas", "/start", "tasas":
			return render.Text(d.Snapshot())
		case "/refresh", "actualizar":
			if !d.Refresh(ctx) {
				return "Ya hay una actualización en curso."
			}
			return render.Text(d.Snapshot())
		case "/auto":
			if len(fields) < 2 {
				break
			}
			switch fields[1] {
			case "on":
				d.SetAutoRefresh(true)
				return "🔄 Auto-actualización activada"
			case "off":
				d.SetAutoRefresh(false)
				return "⏸ Auto-actualización desactivada"
			}
		}
		return helpText
	}
}
