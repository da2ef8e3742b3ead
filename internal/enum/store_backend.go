package enum

type StoreBackend string

const (
	StoreBackendBadger   StoreBackend = "badger"
	StoreBackendPostgres StoreBackend = "postgres"
)

func (b StoreBackend) String() string {
	return string(b)
}
