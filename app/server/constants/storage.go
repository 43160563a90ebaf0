package constants

const (
	CoverMaxSize = 10 << 20 // 封面图片大小上限 (10 MiB)
)
