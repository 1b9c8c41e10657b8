package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"match-service/internal/config"
	"match-service/internal/fileio"
	"match-service/internal/match/model"
	matchSvc "match-service/internal/match/service"
)

type response struct {
	Groups   []model.Group `json:"groups"`
	Opts     model.Options `json:"opts"`
	Products int           `json:"products"`
	Listings int           `json:"listings"`
	Matched  int           `json:"matched"`
	Skipped  int           `json:"skipped"`
}

// Match возвращает http.HandlerFunc для r.Post("/match", ...) в роутере:
// каталог и прайсы приходят одним multipart-запросом, ответ — группы
// (продукт + его листинги) плюс эхо применённых опций.
func Match(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log := logger
		if rid := r.Header.Get("X-Request-ID"); rid != "" {
			log = logger.With().Str("req_id", rid).Logger()
		}

		defer r.Body.Close()
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}

		catalog, catalogHdr, err := r.FormFile("catalog")
		if err != nil {
			http.Error(w, "missing catalog: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer catalog.Close()

		listingFiles := r.MultipartForm.File["listings"]
		if len(listingFiles) == 0 {
			http.Error(w, "missing listings", http.StatusBadRequest)
			return
		}

		catalogRow := atoi(r.FormValue("catalog_header_row"), 1)
		listingRow := atoi(r.FormValue("listings_header_row"), 1)
		opt := model.Options{
			PhraseCheck: toBool(r.FormValue("phrase_check"), false),
		}

		recs, err := fileio.ReadRecords(catalog, catalogHdr.Filename, catalogRow)
		if err != nil {
			http.Error(w, "failed to read catalog: "+err.Error(), http.StatusBadRequest)
			return
		}
		products, err := matchSvc.LoadProducts(recs, catalogHdr.Filename)
		if err != nil {
			// каталог — доверенный вход, его ошибка валит весь запрос
			var ce *model.CatalogError
			if errors.As(err, &ce) {
				http.Error(w, ce.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// прайсы читаем в порядке загрузки, порядок строк сохраняется
		var listings []model.Listing
		skipped := 0
		for _, fh := range listingFiles {
			f, err := fh.Open()
			if err != nil {
				http.Error(w, "failed to open "+fh.Filename+": "+err.Error(), http.StatusBadRequest)
				return
			}
			lrecs, err := fileio.ReadRecords(f, fh.Filename, listingRow)
			f.Close()
			if err != nil {
				http.Error(w, "failed to read "+fh.Filename+": "+err.Error(), http.StatusBadRequest)
				return
			}
			ls := matchSvc.LoadListings(lrecs, fh.Filename, log)
			skipped += len(lrecs) - len(ls)
			listings = append(listings, ls...)
		}

		groups := matchSvc.Run(products, listings, opt)

		matched := 0
		for _, g := range groups {
			matched += len(g.Listings)
		}
		log.Info().
			Int("products", len(products)).
			Int("listings", len(listings)).
			Int("matched", matched).
			Int("skipped", skipped).
			Dur("dur", time.Since(start)).
			Msg("match done")

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(response{
			Groups:   groups,
			Opts:     opt,
			Products: len(products),
			Listings: len(listings),
			Matched:  matched,
			Skipped:  skipped,
		})
	}
}
