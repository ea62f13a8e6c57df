package httpserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/simosh/storefront/internal/domain"
)

func (s *Server) adminExportOrders(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	list, err := s.orders.List(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Orders"
	_ = f.SetSheetName("Sheet1", sheet)
	headers := []string{"ID", "Created", "Status", "Customer", "Phone", "Items", "Subtotal", "Promo", "Discount", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, o := range list {
		items := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, fmt.Sprintf("%s x%d", it.Name.In(domain.LangUZ), it.Qty))
		}
		values := []any{
			o.ID.String(),
			o.CreatedAt.Format(time.RFC3339),
			string(o.Status),
			strings.TrimSpace(o.FirstName + " " + o.LastName),
			o.Phone,
			strings.Join(items, "; "),
			o.Subtotal,
			o.AppliedPromo,
			o.DiscountAmount,
			o.TotalPrice,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("orders export")
	}
}

func (s *Server) adminExportCatalog(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	db, err := s.catalog.Database(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Catalog"
	_ = f.SetSheetName("Sheet1", sheet)
	headers := []string{"SKU", "Name UZ", "Name RU", "Name EN", "Name TR", "Price", "Stock", "Status", "CategoryID"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, p := range db.Products {
		values := []any{p.SKU, p.Name.UZ, p.Name.RU, p.Name.EN, p.Name.TR, p.Price, p.Stock, string(p.Status), p.CategoryID.String()}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="catalog.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("catalog export")
	}
}

// adminImportCatalog upserts products by SKU from an uploaded XLSX in the
// same column layout the catalog export produces.
func (s *Server) adminImportCatalog(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "multipart", 400)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file", 400)
		return
	}
	defer file.Close()
	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "xlsx", 400)
		return
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		http.Error(w, "empty", 400)
		return
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		http.Error(w, "rows", 400)
		return
	}

	db, err := s.catalog.Database(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	bySKU := map[string]uuid.UUID{}
	for _, p := range db.Products {
		bySKU[strings.ToUpper(p.SKU)] = p.ID
	}

	created, updated, skipped := 0, 0, 0
	for i, row := range rows {
		if i == 0 || len(row) < 7 {
			continue
		}
		sku := strings.TrimSpace(row[0])
		if sku == "" {
			skipped++
			continue
		}
		price, err := strconv.ParseInt(strings.TrimSpace(row[5]), 10, 64)
		if err != nil {
			skipped++
			continue
		}
		stock, _ := strconv.Atoi(strings.TrimSpace(row[6]))
		p := domain.Product{
			SKU:    sku,
			Name:   domain.Text(row[1], row[2], row[3], row[4]),
			Price:  price,
			Stock:  stock,
			Status: domain.ProductActive,
		}
		if len(row) > 7 && strings.EqualFold(strings.TrimSpace(row[7]), string(domain.ProductInactive)) {
			p.Status = domain.ProductInactive
		}
		if len(row) > 8 {
			if catID, err := uuid.Parse(strings.TrimSpace(row[8])); err == nil {
				p.CategoryID = catID
			}
		}
		if id, ok := bySKU[strings.ToUpper(sku)]; ok {
			// keep fields the sheet doesn't carry
			if prev := db.ProductByID(id); prev != nil {
				p.Description = prev.Description
				p.Image = prev.Image
				p.Discount = prev.Discount
				if p.CategoryID == uuid.Nil {
					p.CategoryID = prev.CategoryID
				}
			}
			p.ID = id
			updated++
		} else {
			created++
		}
		if err := s.catalog.SaveProduct(r.Context(), &p); err != nil {
			s.storeError(w, err)
			return
		}
	}
	log.Info().Int("created", created).Int("updated", updated).Int("skipped", skipped).Msg("catalog import")
	writeJSON(w, 200, map[string]any{"created": created, "updated": updated, "skipped": skipped})
}
