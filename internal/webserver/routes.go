package webserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tjc-lp/xlbench/internal/report"
)

// listRuns returns the saved record filenames.
func (s *Server) listRuns(c echo.Context) error {
	names, err := s.store.List()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"runs": names})
}

// getRun returns one raw run record.
func (s *Server) getRun(c echo.Context) error {
	run, err := s.store.Open(c.Param("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, run)
}

// runReport renders one run as an HTML report.
func (s *Server) runReport(c echo.Context) error {
	run, err := s.store.Open(c.Param("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	html, err := report.HTML(run)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTML(http.StatusOK, pageShell(fmt.Sprintf("Run %s", run.RunID), html))
}

// index links to the saved runs.
func (s *Server) index(c echo.Context) error {
	names, err := s.store.List()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	body := "<h1>xlbench results</h1>\n<ul>\n"
	for _, name := range names {
		body += fmt.Sprintf(`<li><a href="/runs/%s">%s</a></li>`+"\n", name, name)
	}
	body += "</ul>\n"
	return c.HTML(http.StatusOK, pageShell("xlbench results", body))
}

func pageShell(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; }
</style>
</head>
<body>
%s
</body>
</html>
`, title, body)
}
