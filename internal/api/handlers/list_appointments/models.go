package list_appointments

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/internal/service/appointments/models"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// ToServiceRequest формирует запрос к сервису из query параметров
// startDate, endDate, status, includeDeleted, limit, offset - все опциональны
func ToServiceRequest(query url.Values) (*models.ListRequest, error) {
	req := &models.ListRequest{
		Limit: defaultLimit,
	}

	if s := query.Get("startDate"); s != "" {
		date, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %w", err)
		}
		req.StartDate = &date
	}

	if s := query.Get("endDate"); s != "" {
		date, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %w", err)
		}
		req.EndDate = &date
	}

	if s := query.Get("status"); s != "" {
		status := domain.AppointmentStatus(s)
		req.Status = &status
	}

	if s := query.Get("includeDeleted"); s != "" {
		includeDeleted, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid includeDeleted value: %w", err)
		}
		req.IncludeDeleted = includeDeleted
	}

	if s := query.Get("limit"); s != "" {
		limit, err := strconv.ParseUint(s, 10, 64)
		if err != nil || limit == 0 {
			return nil, fmt.Errorf("invalid limit %q", s)
		}
		req.Limit = min(limit, maxLimit)
	}

	if s := query.Get("offset"); s != "" {
		offset, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid offset: %w", err)
		}
		req.Offset = offset
	}

	return req, nil
}
