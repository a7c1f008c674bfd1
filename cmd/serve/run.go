// Package serve hosts the scanned photo set on a local web map.
package serve

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/R3natoky/photoutm/config"
	"github.com/R3natoky/photoutm/images"
	"github.com/R3natoky/photoutm/logger"
	"github.com/R3natoky/photoutm/scan"
)

type serveAPI struct {
	folder  string
	records []scan.PhotoRecord
}

func RunServeCmd(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one folder argument")
	}

	folder := strings.TrimSpace(args[0])
	if s, err := os.Stat(folder); err != nil || !s.IsDir() {
		return fmt.Errorf("path '%s' is not a directory", folder)
	}

	listen, err := cmd.Flags().GetString("listen")
	if err != nil {
		return err
	}

	scanner := scan.New()
	records, summary, err := scanner.ScanFolder(folder)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", folder, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no photo in %s had usable coordinates", folder)
	}
	logger.Info("serving %d of %d photos", len(records), summary.FilesFound)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := &serveAPI{folder: folder, records: records}
	r.GET("/", api.ServeIndex)
	r.GET("/photo/:name", api.ServePhoto)

	logger.Info("listening on http://%s", listen)
	return r.Run(listen)
}

type mapMarker struct {
	Name      string  `json:"name"`
	File      string  `json:"file"`
	Date      string  `json:"date"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	UTM       string  `json:"utm"`
	PhotoHref string  `json:"photoHref"`
}

func (api *serveAPI) ServeIndex(c *gin.Context) {
	markers := make([]mapMarker, 0, len(api.records))
	for _, r := range api.records {
		markers = append(markers, mapMarker{
			Name:      r.Title(),
			File:      r.Filename,
			Date:      r.Timestamp,
			Lat:       r.Latitude,
			Lon:       r.Longitude,
			UTM:       fmt.Sprintf("Zona %d%s, E: %.2f, N: %.2f", r.Zone, r.Hemisphere, r.Easting, r.Northing),
			PhotoHref: "/photo/" + r.Filename,
		})
	}

	payload, err := json.Marshal(markers)
	if err != nil {
		c.String(http.StatusInternalServerError, "marshal markers: %v", err)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	err = indexTemplate.Execute(c.Writer, map[string]interface{}{
		"Folder":  api.folder,
		"Markers": template.JS(payload),
	})
	if err != nil {
		logger.Error("render index: %v", err)
	}
}

// ServePhoto streams an orientation-corrected thumbnail of one scanned
// photo. Only filenames from the scan are served.
func (api *serveAPI) ServePhoto(c *gin.Context) {
	name := c.Param("name")

	for _, r := range api.records {
		if r.Filename != name {
			continue
		}

		img, err := images.LoadOriented(r.Path, r.Orientation)
		if err != nil {
			c.String(http.StatusInternalServerError, "load photo: %v", err)
			return
		}
		thumb := images.Thumbnail(img, config.KMZImageWidth)

		tmp, err := images.SaveJPEGTemp(thumb, "serve", config.KMZImageQuality)
		if err != nil {
			c.String(http.StatusInternalServerError, "encode photo: %v", err)
			return
		}
		defer os.Remove(tmp)

		c.File(tmp)
		return
	}

	c.Status(http.StatusNotFound)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8"/>
  <title>photoutm — {{ .Folder }}</title>
  <meta name="viewport" content="width=device-width, initial-scale=1.0"/>
  <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"/>
  <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
  <style>
    html, body, #map { height: 100%; margin: 0; }
    .popup img { max-width: 100%; }
  </style>
</head>
<body>
  <div id="map"></div>
  <script>
    const markers = {{ .Markers }};

    const map = L.map('map');
    L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
      attribution: '&copy; OpenStreetMap contributors'
    }).addTo(map);

    const group = L.featureGroup();
    for (const m of markers) {
      const html = '<div class="popup">'
        + '<b>' + m.name + '</b><br/>'
        + m.file + '<br/>'
        + (m.date ? m.date + '<br/>' : '')
        + m.utm + '<br/>'
        + '<a href="' + m.photoHref + '" target="_blank">'
        + '<img src="' + m.photoHref + '" alt="' + m.file + '"/></a>'
        + '</div>';
      L.marker([m.lat, m.lon]).bindPopup(html).addTo(group);
    }
    group.addTo(map);
    map.fitBounds(group.getBounds().pad(0.1));
  </script>
</body>
</html>
`))
