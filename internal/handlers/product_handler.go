package handlers

import (
    "net/http"
	"fmt"
	"strconv"

    "github.com/gin-gonic/gin"
	"github.com/s0ld1err/MagazinOnline/internal/catalog"
	"github.com/s0ld1err/MagazinOnline/internal/db"
    "github.com/s0ld1err/MagazinOnline/internal/models"
	"github.com/s0ld1err/MagazinOnline/internal/utils"
)

type CreateProductRequest struct {

    Name       string  `json:"name" binding:"required"`
    Price      float64 `json:"price" binding:"required,gt=0"`
    CategoryID uint    `json:"category_id" binding:"required"`
}

// GET /products
func ListProducts(c *gin.Context) {
    var products []models.Product
    if err := db.DB.Find(&products).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }
    c.JSON(http.StatusOK, products)
}

// GET /products/:id
func GetProduct(c *gin.Context) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 32)
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
        return
    }

    var product models.Product
    if err := db.DB.First(&product, uint(id)).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product not found with ID: %d", id)})
        return
    }

    c.JSON(http.StatusOK, product)
}

func CreateProduct(c *gin.Context) {
    var req CreateProductRequest

    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    var category models.Category
    if err := db.DB.First(&category, req.CategoryID).Error; err != nil {

        errorMessage := fmt.Sprintf("Category not found with ID: %d", req.CategoryID)

        c.JSON(http.StatusNotFound, gin.H{"error": errorMessage})
        return
    }

    product := models.Product{
        Name:       req.Name,
        Price:      req.Price,
        CategoryID: req.CategoryID,
    }

    if err := db.DB.Create(&product).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }

    if err := db.DB.Preload("Category").First(&product, product.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve Product with Category details"})
		return
	}

    c.JSON(http.StatusCreated, product)
}

// PUT /products/:id
func UpdateProduct(c *gin.Context) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 32)
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
        return
    }

    var req CreateProductRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }

    var product models.Product
    if err := db.DB.First(&product, uint(id)).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product not found with ID: %d", id)})
        return
    }

    product.Name = req.Name
    product.Price = req.Price
    product.CategoryID = req.CategoryID

    if err := db.DB.Save(&product).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }

    // Carts price lines are recomputed from the catalog, so a stale cache
    // entry would show old prices until TTL; drop it eagerly.
    if err := catalog.Invalidate(c.Request.Context(), catalogCache, product.ID); err != nil {
        logger.Warnw("catalog cache invalidate failed", "product_id", product.ID, "err", err)
    }

    c.JSON(http.StatusOK, product)
}

// DELETE /products/:id
func DeleteProduct(c *gin.Context) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 32)
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
        return
    }

    var product models.Product
    if err := db.DB.First(&product, uint(id)).Error; err != nil {
        c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product not found with ID: %d", id)})
        return
    }

    if err := db.DB.Delete(&product).Error; err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }

    if err := catalog.Invalidate(c.Request.Context(), catalogCache, product.ID); err != nil {
        logger.Warnw("catalog cache invalidate failed", "product_id", product.ID, "err", err)
    }

    c.JSON(http.StatusNoContent, nil)
}

func GetAveragePrice(c *gin.Context) {
    categoryIDParam := c.Query("category_id")
    if categoryIDParam == "" {
        c.JSON(http.StatusBadRequest, gin.H{"error": "category_id is required"})
        return
    }

    var categoryID uint
    if _, err := fmt.Sscan(categoryIDParam, &categoryID); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
        return
    }

    // Fetch all category IDs (recursive)
    categoryIDs, err := utils.GetAllCategoryIDs(categoryID)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }

    // Calculate average
    var avg float64
    err = db.DB.
        Model(&models.Product{}).
        Where("category_id IN ?", categoryIDs).
        Select("COALESCE(AVG(price), 0)").
        Scan(&avg).Error
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
    }

    c.JSON(http.StatusOK, gin.H{"category_id": categoryID, "average_price": avg})
}
