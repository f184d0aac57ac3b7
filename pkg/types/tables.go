package types

import "fmt"

type TableName string

func (s TableName) Name() string {
	return fmt.Sprintf("%s%s", TABLE_PREFIX, s)
}

const TABLE_PREFIX = "lv_"

const (
	TABLE_LINK            = TableName("link")
	TABLE_NOTE            = TableName("note")
	TABLE_LINK_CHUNK      = TableName("link_chunk")
	TABLE_BACKGROUND_TASK = TableName("background_task")
)
