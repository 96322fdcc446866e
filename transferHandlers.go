package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/blending_backend/config"
	"github.com/mmdatafocus/blending_backend/models"
	"github.com/mmdatafocus/blending_backend/transfer"
)

const maxImportSizeBytes int64 = 5 * 1024 * 1024

func registerTransferRoutes(r *gin.Engine, store *models.Store) {
	api := r.Group("/api")

	api.GET("/export/:entity", func(c *gin.Context) {
		entityKey := c.Param("entity")
		if !isKnownEntityKey(entityKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown entity key"})
			return
		}

		if c.Query("format") == "xlsx" {
			f, err := transfer.ExportXlsx(c.Request.Context(), store, entityKey)
			if err != nil {
				c.Error(err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
				return
			}
			c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", entityKey))
			if err := f.Write(c.Writer); err != nil {
				c.Error(err)
			}
			return
		}

		blob, err := transfer.Export(c.Request.Context(), store, entityKey)
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", entityKey))
		c.Data(http.StatusOK, "text/csv", []byte(blob))
	})

	// Unknown template keys intentionally fall back to the generic
	// two-column header instead of erroring.
	api.GET("/templates/:entity", func(c *gin.Context) {
		entityKey := c.Param("entity")

		if c.Query("format") == "xlsx" {
			f, err := transfer.TemplateXlsx(entityKey)
			if err != nil {
				c.Error(err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "template failed"})
				return
			}
			c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_template.xlsx", entityKey))
			if err := f.Write(c.Writer); err != nil {
				c.Error(err)
			}
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_template.csv", entityKey))
		c.Data(http.StatusOK, "text/csv", []byte(transfer.Template(entityKey)))
	})

	api.POST("/import/:entity", func(c *gin.Context) {
		logger := config.GetLogger()

		entityKey := c.Param("entity")
		if !isKnownEntityKey(entityKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown entity key"})
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		if fileHeader.Size > maxImportSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 5MB limit"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxImportSizeBytes+1))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
			return
		}
		if int64(len(data)) > maxImportSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 5MB limit"})
			return
		}

		result, err := transfer.Import(c.Request.Context(), store, entityKey, fileHeader.Filename, data)
		if err != nil {
			config.LogError(logger, "transferHandlers.go", "import", entityKey, fileHeader.Filename, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
}

func isKnownEntityKey(entityKey string) bool {
	switch strings.TrimSpace(entityKey) {
	case models.EntityKeyCommodities, models.EntityKeyUOMs, models.EntityKeyLocations,
		models.EntityKeyCounterParties, models.EntityKeyBlends,
		models.EntityKeyBlendComponents, models.EntityKeyCapacity:
		return true
	}
	return false
}
