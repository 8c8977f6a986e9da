package config

type config struct {
	Server    server    `yaml:"server" mapstructure:"server"`
	Log       logConf   `yaml:"log" mapstructure:"log"`
	Mysql     mysql     `yaml:"mysql" mapstructure:"mysql"`
	Redis     redis     `yaml:"redis" mapstructure:"redis"`
	RabbitMq  rabbitmq  `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Minio     minio     `yaml:"minio" mapstructure:"minio"`
	Jwt       jwt       `yaml:"jwt" mapstructure:"jwt"`
	Snowflake snowflake `yaml:"snowflake" mapstructure:"snowflake"`
	Sentinel  sentinel  `yaml:"sentinel" mapstructure:"sentinel"`
	Jaeger    jaeger    `yaml:"jaeger" mapstructure:"jaeger"`
}

type server struct {
	Addr           string   `yaml:"addr"`
	MaxRequestBody int      `yaml:"max_request_body" mapstructure:"max_request_body"`
	UploadDir      string   `yaml:"upload_dir" mapstructure:"upload_dir"`
	Pprof          bool     `yaml:"pprof"`
	PprofAddr      string   `yaml:"pprof_addr" mapstructure:"pprof_addr"`
	AllowOrigins   []string `yaml:"allow_origins" mapstructure:"allow_origins"`
}

type logConf struct {
	Level string `yaml:"level"`
}

type mysql struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Charset  string `yaml:"charset"`
	Params   string `yaml:"params"`
	MaxOpen  int    `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdle  int    `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type rabbitmq struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type minio struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
	PublicURL string `yaml:"public_url" mapstructure:"public_url"`
}

type jwt struct {
	Secret  string `yaml:"secret"`
	Realm   string `yaml:"realm"`
	Timeout string `yaml:"timeout"`
}

type snowflake struct {
	WorkerID     int64 `yaml:"worker_id" mapstructure:"worker_id"`
	DatacenterID int64 `yaml:"datacenter_id" mapstructure:"datacenter_id"`
}

type sentinel struct {
	QPS float64 `yaml:"qps"`
}

type jaeger struct {
	ServiceName string  `yaml:"service_name" mapstructure:"service_name"`
	AgentAddr   string  `yaml:"agent_addr" mapstructure:"agent_addr"`
	SampleRate  float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}
