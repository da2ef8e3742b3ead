package enum

type EntityType string

const (
	STATUS     EntityType = "STATUS"
	ATTACHMENT EntityType = "ATTACHMENT"
)

func (entityType EntityType) String() string {
	return string(entityType)
}
