package db

type TableName string

func MakeKey(table TableName, key []byte) []byte {
	return append([]byte(table+":"), key...)
}
