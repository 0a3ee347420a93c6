package http

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ServeMainApp serves the main application page from the web directory
func ServeMainApp(webDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		indexPath := filepath.Join(webDir, "index.html")

		if _, err := os.Stat(indexPath); os.IsNotExist(err) {
			// No custom frontend installed; fall back to the built-in index.
			ServeIndexPage()(w, r)
			return
		}

		serveHTML(w, r, indexPath)
	}
}

// ServeIndexPage serves a minimal landing page linking the dashboard
// endpoints
func ServeIndexPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, `
<!DOCTYPE html>
<html>
<head>
    <title>Cury Pulse - Delivery Dashboard</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        .status { padding: 10px; margin: 10px 0; border-radius: 4px; }
        .info { background-color: #d1ecf1; color: #0c5460; }
    </style>
</head>
<body>
    <h1>Cury Pulse - Delivery Dashboard</h1>
    <div class="status info">
        <strong>Status:</strong> Application is running
        <br><strong>Time:</strong> %s
    </div>
    <h2>Views</h2>
    <ul>
        <li><a href="/charts/company">Company charts</a></li>
        <li><a href="/charts/drivers">Drivers charts</a></li>
        <li><a href="/charts/restaurants">Restaurants charts</a></li>
    </ul>
    <h2>API</h2>
    <ul>
        <li><a href="/api/dashboard/company">Company view (JSON)</a></li>
        <li><a href="/api/dashboard/drivers">Drivers view (JSON)</a></li>
        <li><a href="/api/dashboard/restaurants">Restaurants view (JSON)</a></li>
        <li><a href="/api/dashboard/export/orders.csv">Order export (CSV)</a></li>
        <li><a href="/api/health">Health Check</a></li>
        <li><a href="/api/version">Version Info</a></li>
    </ul>
</body>
</html>
		`, time.Now().Format("2006-01-02 15:04:05"))
	}
}

// serveHTML serves an HTML file with proper headers
func serveHTML(w http.ResponseWriter, r *http.Request, filePath string) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	tmpl, err := template.ParseFiles(filePath)
	if err != nil {
		http.Error(w, "Error loading page", http.StatusInternalServerError)
		return
	}

	if err := tmpl.Execute(w, nil); err != nil {
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}
}
