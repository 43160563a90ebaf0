package constants

const (
	ListLimitDefault = 100
	ListLimitMax     = 1000 // 与 api.ListParams 的校验标签保持一致
)
