package usecase

// StoreStatus — результат пробы доступности хранилища.
type StoreStatus struct {
	Available bool
	Message   string
}

func NewStoreStatus(available bool, message string) *StoreStatus {
	return &StoreStatus{Available: available, Message: message}
}

// CatalogState различает «ещё грузимся» и «загрузились, но пусто».
type CatalogState string

const (
	CatalogLoading CatalogState = "loading"
	CatalogEmpty   CatalogState = "empty"
	CatalogReady   CatalogState = "ready"
)
