package config

type Config struct {
	System struct {
		Mode                  string `mapstructure:"mode"`       // 运行模式，以 p 开头视为生产环境
		IsProd                bool   `mapstructure:"-"`          // 是否为生产环境
		Listen                string `mapstructure:"listen"`     // 监听地址
		DBConnectionString    string `mapstructure:"db_conn"`    // Postgres 数据库的连接字符串
		RedisConnectionString string `mapstructure:"redis_conn"` // Redis 数据库的连接字符串
	} `mapstructure:"system"`
	ApiSettings struct {
		Secret string `mapstructure:"secret"` // 签名密钥，用于签发 JWT ，进程启动时读取一次，运行期间不会轮换
	} `mapstructure:"apisettings"`
	Storage struct {
		Endpoint      string `mapstructure:"endpoint"`        // S3 兼容服务地址，留空使用 AWS 默认
		Region        string `mapstructure:"region"`          // 区域
		AccessKey     string `mapstructure:"access_key"`      // 留空时使用默认凭据链
		SecretKey     string `mapstructure:"secret_key"`      //
		Container     string `mapstructure:"container"`       // 封面图片所在的 bucket
		PublicBaseURL string `mapstructure:"public_base_url"` // 对外访问图片使用的地址前缀
		UsePathStyle  bool   `mapstructure:"use_path_style"`  // MinIO 一类的服务需要开启
	} `mapstructure:"storage"`
	Bootstrap struct {
		AdminEmail    string `mapstructure:"admin_email"`    // 没有任何账号时自动注册的管理员，留空不创建
		AdminPassword string `mapstructure:"admin_password"` //
		AdminName     string `mapstructure:"admin_name"`     //
	} `mapstructure:"bootstrap"`
}
