package controllers

import (
	"go-commerce/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActiveStateMessage_ArchiveIsIdempotent(t *testing.T) {
	active := models.Product{Name: "Keyboard", IsActive: true}
	archived := models.Product{Name: "Keyboard", IsActive: false}

	assert.Equal(t, "Product archived successfully",
		activeStateMessage(active, false, "Product archived successfully", "Product already archived"))
	assert.Equal(t, "Product already archived",
		activeStateMessage(archived, false, "Product archived successfully", "Product already archived"))
}

func TestActiveStateMessage_ActivateIsIdempotent(t *testing.T) {
	active := models.Product{Name: "Keyboard", IsActive: true}
	archived := models.Product{Name: "Keyboard", IsActive: false}

	assert.Equal(t, "Product activated successfully",
		activeStateMessage(archived, true, "Product activated successfully", "Product already activated"))
	assert.Equal(t, "Product already activated",
		activeStateMessage(active, true, "Product activated successfully", "Product already activated"))
}
