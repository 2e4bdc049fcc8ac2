package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"tracking-service/internal/models"
	"tracking-service/internal/repository"
)

func TestListActiveCarriers(t *testing.T) {
	carriers := &MockCarrierService{}
	router := setupRouter(&MockShipmentService{}, carriers)

	carriers.On("ListCarriers", mock.Anything, tenantHeader, true).
		Return([]*models.Carrier{{ID: uuid.New(), Name: "Yalidine", IsActive: true}}, nil)

	w := doRequest(router, http.MethodGet, "/api/carriers/active", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)
	carriers.AssertExpectations(t)
}

func TestCreateCarrier_RequiresName(t *testing.T) {
	router := setupRouter(&MockShipmentService{}, &MockCarrierService{})

	w := doRequest(router, http.MethodPost, "/api/carriers", map[string]string{"website": "https://x.dz"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCarrier(t *testing.T) {
	carriers := &MockCarrierService{}
	router := setupRouter(&MockShipmentService{}, carriers)

	carriers.On("CreateCarrier", mock.Anything, tenantHeader, mock.MatchedBy(func(r *models.CreateCarrierRequest) bool {
		return r.Name == "ZR Express"
	})).Return(&models.Carrier{ID: uuid.New(), Name: "ZR Express", IsActive: true}, nil)

	w := doRequest(router, http.MethodPost, "/api/carriers", map[string]interface{}{"name": "ZR Express"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestUpdateAndDeleteCarrier_NotFound(t *testing.T) {
	carriers := &MockCarrierService{}
	router := setupRouter(&MockShipmentService{}, carriers)
	id := uuid.New()

	carriers.On("UpdateCarrier", mock.Anything, tenantHeader, id, mock.Anything).Return(nil, repository.ErrNotFound)
	carriers.On("DeleteCarrier", mock.Anything, tenantHeader, id).Return(repository.ErrNotFound)

	w := doRequest(router, http.MethodPut, "/api/carriers/"+id.String(), map[string]interface{}{"isActive": false})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Carrier not found", decode(t, w)["error"])

	w = doRequest(router, http.MethodDelete, "/api/carriers/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCarrier(t *testing.T) {
	carriers := &MockCarrierService{}
	router := setupRouter(&MockShipmentService{}, carriers)
	id := uuid.New()

	carriers.On("GetCarrier", mock.Anything, tenantHeader, id).Return(&models.Carrier{ID: id, Name: "Poste"}, nil)

	w := doRequest(router, http.MethodGet, "/api/carriers/"+id.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
