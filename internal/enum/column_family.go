package enum

// ColumnFamily names a group of rows in the column store
type ColumnFamily string

const (
	ColumnFamilyAttachment ColumnFamily = "Attachment"
	ColumnFamilyStatus     ColumnFamily = "Status"
	ColumnFamilyTimeline   ColumnFamily = "Timeline"
	ColumnFamilyUserline   ColumnFamily = "Userline"
	ColumnFamilyDiscussion ColumnFamily = "Discussion"
	ColumnFamilyShares     ColumnFamily = "Shares"
)

func (cf ColumnFamily) String() string {
	return string(cf)
}
