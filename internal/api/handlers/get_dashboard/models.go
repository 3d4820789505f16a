package get_dashboard

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-TireService/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// year по умолчанию текущий, month по умолчанию текущий (0 - весь год)
func ToServiceRequest(query url.Values, now time.Time) (*models.DashboardRequest, error) {
	req := &models.DashboardRequest{
		Year:  now.Year(),
		Month: int(now.Month()),
	}

	if s := query.Get("year"); s != "" {
		year, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid year: %w", err)
		}
		req.Year = year
	}

	if s := query.Get("month"); s != "" {
		month, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid month: %w", err)
		}
		req.Month = month
	}

	return req, nil
}
