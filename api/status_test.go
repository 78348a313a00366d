package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/skyline/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatusHandler_get(t *testing.T) {
	mockService := &MockStatusUseCase{}
	handler := NewStatusHandler(mockService, nil)
	c, w := newContext(http.MethodGet, "/api/status?flightNum=zz999&date=2026-02-02", nil)

	mockService.On("GetStatus", c.Request.Context(), "zz999", "2026-02-02").Return(domain.StatusReport{
		Flight:             "SkyLine ZZ999",
		Status:             "Delayed",
		Gate:               "C12",
		Date:               "2026-02-02",
		EstimatedDeparture: "TBD",
		ServerTime:         time.Date(2026, 2, 2, 8, 0, 1, 0, time.Local),
	})

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"flight": "SkyLine ZZ999",
		"status": "Delayed",
		"gate": "C12",
		"date": "2026-02-02",
		"estimatedDeparture": "TBD",
		"serverTime": "2026-02-02T08:00:01"
	}`, w.Body.String())
	mockService.AssertExpectations(t)
}
