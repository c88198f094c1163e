package availability

import (
	"github.com/m04kA/SMC-TrainingService/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
