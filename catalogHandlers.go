package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/blending_backend/models"
	"github.com/mmdatafocus/blending_backend/utils"
)

func registerCatalogRoutes(r *gin.Engine, store *models.Store) {
	api := r.Group("/api")

	// UOMs
	api.GET("/uoms", func(c *gin.Context) {
		results, err := store.GetUOMs(c.Request.Context())
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": results})
	})
	api.GET("/uoms/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		result, err := store.GetUOM(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
	api.POST("/uoms", func(c *gin.Context) {
		var input models.NewUOM
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		idempotentCreate(c, store, models.EntityKeyUOMs, func(ctx context.Context) (*models.UOM, error) {
			return store.CreateUOM(ctx, &input)
		})
	})
	api.PUT("/uoms/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewUOM
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		result, err := store.UpdateUOM(c.Request.Context(), id, &input)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
	api.DELETE("/uoms/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := store.DeleteUOM(c.Request.Context(), id); err != nil {
			respondStoreError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	// Commodities
	api.GET("/commodities", func(c *gin.Context) {
		results, err := store.GetCommodities(c.Request.Context())
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": results})
	})
	api.GET("/commodities/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		result, err := store.GetCommodity(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
	api.GET("/commodities/:id/details", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		result, err := store.GetCommodityDetails(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
	api.POST("/commodities", func(c *gin.Context) {
		var input models.NewCommodity
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		idempotentCreate(c, store, models.EntityKeyCommodities, func(ctx context.Context) (*models.Commodity, error) {
			return store.CreateCommodity(ctx, &input)
		})
	})
	api.PUT("/commodities/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewCommodity
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		result, err := store.UpdateCommodity(c.Request.Context(), id, &input)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
	api.DELETE("/commodities/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := store.DeleteCommodity(c.Request.Context(), id); err != nil {
			respondStoreError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	// Locations
	api.GET("/locations", func(c *gin.Context) {
		results, err := store.GetLocations(c.Request.Context())
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": results})
	})
	api.GET("/locations/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		result, err := store.GetLocation(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
	api.GET("/locations/:id/details", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		result, err := store.GetLocationDetails(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
	api.POST("/locations", func(c *gin.Context) {
		var input models.NewLocation
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		idempotentCreate(c, store, models.EntityKeyLocations, func(ctx context.Context) (*models.Location, error) {
			return store.CreateLocation(ctx, &input)
		})
	})
	api.PUT("/locations/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewLocation
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		result, err := store.UpdateLocation(c.Request.Context(), id, &input)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
	api.DELETE("/locations/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := store.DeleteLocation(c.Request.Context(), id); err != nil {
			respondStoreError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	// Counterparties
	api.GET("/counter-parties", func(c *gin.Context) {
		results, err := store.GetCounterParties(c.Request.Context())
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": results})
	})
	api.GET("/counter-parties/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		result, err := store.GetCounterParty(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
	api.POST("/counter-parties", func(c *gin.Context) {
		var input models.NewCounterParty
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		if input.CreditStatus != nil && !input.CreditStatus.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credit_status"})
			return
		}
		idempotentCreate(c, store, models.EntityKeyCounterParties, func(ctx context.Context) (*models.CounterParty, error) {
			return store.CreateCounterParty(ctx, &input)
		})
	})
	api.PUT("/counter-parties/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewCounterParty
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		if input.CreditStatus != nil && !input.CreditStatus.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credit_status"})
			return
		}
		result, err := store.UpdateCounterParty(c.Request.Context(), id, &input)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
	api.DELETE("/counter-parties/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := store.DeleteCounterParty(c.Request.Context(), id); err != nil {
			respondStoreError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	// Blends
	api.GET("/blends", func(c *gin.Context) {
		results, err := store.GetBlends(c.Request.Context())
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": results})
	})
	api.GET("/blends/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		result, err := store.GetBlend(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
	api.GET("/blends/:id/components", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		results, err := store.GetBlendComponentsByBlend(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": results})
	})
	api.GET("/blends/:id/validate-proportion", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		result, err := store.ValidateBlendProportion(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
	api.POST("/blends", func(c *gin.Context) {
		var input models.NewBlend
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		idempotentCreate(c, store, models.EntityKeyBlends, func(ctx context.Context) (*models.Blend, error) {
			return store.CreateBlend(ctx, &input)
		})
	})
	api.POST("/blends/with-components", func(c *gin.Context) {
		var input models.NewBlendWithComponents
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		idempotentCreate(c, store, models.EntityKeyBlends, func(ctx context.Context) (*models.Blend, error) {
			return store.CreateBlendWithComponents(ctx, &input)
		})
	})
	api.PUT("/blends/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewBlend
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		result, err := store.UpdateBlend(c.Request.Context(), id, &input)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
	api.DELETE("/blends/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := store.DeleteBlend(c.Request.Context(), id); err != nil {
			respondStoreError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	// Blend components
	api.GET("/blend-components", func(c *gin.Context) {
		results, err := store.GetBlendComponents(c.Request.Context())
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": results})
	})
	api.GET("/blend-components/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		result, err := store.GetBlendComponent(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
	api.POST("/blend-components", func(c *gin.Context) {
		var input models.NewBlendComponent
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		idempotentCreate(c, store, models.EntityKeyBlendComponents, func(ctx context.Context) (*models.BlendComponent, error) {
			return store.CreateBlendComponent(ctx, &input)
		})
	})
	api.PUT("/blend-components/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewBlendComponent
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		result, err := store.UpdateBlendComponent(c.Request.Context(), id, &input)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
	api.DELETE("/blend-components/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := store.DeleteBlendComponent(c.Request.Context(), id); err != nil {
			respondStoreError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	// Capacity
	api.GET("/capacity", func(c *gin.Context) {
		results, err := store.GetCapacities(c.Request.Context())
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": results})
	})
	api.GET("/capacity/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		result, err := store.GetCapacity(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
	api.POST("/capacity", func(c *gin.Context) {
		var input models.NewCapacity
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		idempotentCreate(c, store, models.EntityKeyCapacity, func(ctx context.Context) (*models.Capacity, error) {
			return store.CreateCapacity(ctx, &input)
		})
	})
	api.POST("/capacity/validate", func(c *gin.Context) {
		var input models.NewCapacity
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		result, err := store.ValidateCapacity(c.Request.Context(), &input)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
	api.PUT("/capacity/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewCapacity
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		result, err := store.UpdateCapacity(c.Request.Context(), id, &input)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
	api.DELETE("/capacity/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := store.DeleteCapacity(c.Request.Context(), id); err != nil {
			respondStoreError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, utils.ErrorRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// idempotentCreate replays the remembered record when the client retries a
// create with the same Idempotency-Key header.
func idempotentCreate[T any](c *gin.Context, store *models.Store, entity string, create func(ctx context.Context) (*T, error)) {
	key := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	record, err := store.IdempotentCreate(entity, key, func() (any, error) {
		return create(c.Request.Context())
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": record})
}
