package productcontroller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/trendy-shop/models"
	"github.com/junaidrashid-git/trendy-shop/store"
	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{
	"ID", "Name", "Price", "Description", "Category", "Image",
	"Rating", "Reviews", "Badge", "Stock", "CreatedAt",
}

func ExportProductsToExcel(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := s.ListProducts(c.Request.Context())
		if err != nil {
			log.Printf("❌ export products: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
			return
		}

		file, err := productsWorkbook(products)
		if err != nil {
			log.Printf("❌ export products: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create Excel sheet"})
			return
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			log.Printf("❌ write products workbook: %v", err)
		}
	}
}

func productsWorkbook(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetFloat(p.Price)
		row.AddCell().SetString(p.Description)
		row.AddCell().SetString(p.Category)
		row.AddCell().SetString(p.Image)
		row.AddCell().SetFloat(p.Rating)
		row.AddCell().SetInt(p.ReviewCount)
		row.AddCell().SetString(p.Badge)
		row.AddCell().SetInt(p.Stock)
		row.AddCell().SetString(p.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return file, nil
}
