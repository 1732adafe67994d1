package reservation

import "github.com/devbada/sisters-salon-reservation-sub001/pkg/txmanager"

// DBExecutor переиспользуем интерфейс executor из txmanager (*sql.DB или *sql.Tx)
type DBExecutor = txmanager.DBExecutor
