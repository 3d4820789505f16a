package catalog

import (
	"github.com/m04kA/SMC-TireService/pkg/dbmetrics"
)

// DBExecutor интерфейс для работы с БД (общий для *dbmetrics.DB и транзакции)
type DBExecutor = dbmetrics.DBExecutor
