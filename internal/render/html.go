package render

import (
	"html/template"

	"BCVMonitor/internal/dashboard"
)

// PageName is the template name the server renders.
const PageName = "dashboard.html"

// Page is the data behind the dashboard page.
type Page struct {
	Cards       []Card
	LastUpdate  string
	Notice      string
	AutoRefresh bool
	Loading     bool
	State       string
}

// NewPage builds the page data for a view.
func NewPage(v dashboard.View) Page {
	return Page{
		Cards:       Cards(v.Record),
		LastUpdate:  LastUpdate(v.Record, v.UpdatedAt),
		Notice:      v.Notice,
		AutoRefresh: v.AutoRefresh,
		Loading:     v.Loading,
		State:       v.State.String(),
	}
}

// Templates returns the parsed page templates.
func Templates() *template.Template {
	return template.Must(template.New(PageName).Parse(pageHTML))
}

const pageHTML = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Monitor BCV</title>
<style>
body{font-family:system-ui,sans-serif;background:#f4f6fb;margin:0;padding:24px;color:#222}
.grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(220px,1fr));gap:16px}
.currency-card{background:#fff;border-radius:12px;padding:16px;box-shadow:0 2px 6px rgba(0,0,0,.08)}
.currency-header{display:flex;justify-content:space-between;align-items:center}
.currency-info{display:flex;align-items:center}
.value-number{font-size:1.8em;font-weight:600}
.error{background:#fdecea;color:#b3261e;padding:12px;border-radius:8px;margin-bottom:16px}
.toolbar{display:flex;gap:12px;align-items:center;margin-bottom:16px}
</style>
</head>
<body>
<h1>Tasas oficiales BCV</h1>
<div class="toolbar">
  <button type="button" id="refreshBtn">Actualizar</button>
  <label>{{if .AutoRefresh}}<input type="checkbox" id="autoRefresh" checked>{{else}}<input type="checkbox" id="autoRefresh">{{end}} Auto-actualización</label>
  <span id="lastUpdate">{{.LastUpdate}}</span>
</div>
{{if .Notice}}<div class="error" id="error">{{.Notice}}</div>{{end}}
{{if .Loading}}<p id="loading">Cargando...</p>{{end}}
<div class="grid" id="currenciesGrid">
{{range .Cards}}
  <div class="currency-card">
    <div class="currency-header">
      <div class="currency-info">
        <img src="{{.Image}}" alt="{{.Title}}" style="width:24px;height:24px;margin-right:8px">
        <div><h3>{{.Title}}</h3><p>{{.Code}}</p></div>
      </div>
      <div class="currency-symbol" style="color: {{.Color}}">{{.Arrow}}</div>
    </div>
    <div class="currency-value">
      <div class="value-number">{{.Price}}</div>
      <div class="value-label">{{.Label}}</div>
      <div class="price-change" style="color: {{.Color}}">{{.Change}}</div>
    </div>
    <div class="currency-status">
      <span>Actualizado</span>
      <small>Anterior: {{.Previous}}</small>
    </div>
  </div>
{{end}}
</div>
<script>
document.getElementById('refreshBtn').addEventListener('click', function (e) {
  e.target.disabled = true;
  fetch('/api/refresh', {method: 'POST'}).finally(function () { e.target.disabled = false; });
});
document.getElementById('autoRefresh').addEventListener('change', function (e) {
  fetch('/api/auto-refresh?enabled=' + e.target.checked, {method: 'POST'});
});
var ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
ws.onmessage = function () { location.reload(); };
</script>
</body>
</html>
`
