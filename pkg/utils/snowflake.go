package utils

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

// 41位毫秒时间戳 | 5位数据中心 | 5位节点 | 12位序列号
const (
	idEpoch        = int64(1704067200000) // 2024-01-01
	nodeBits       = 5
	sequenceBits   = 12
	maxNodeID      = int64(1<<nodeBits - 1)
	sequenceMask   = int64(1<<sequenceBits - 1)
	workerShift    = sequenceBits
	datacenterShft = sequenceBits + nodeBits
	timeShift      = sequenceBits + 2*nodeBits
)

// Snowflake 生成全局递增的资源ID, 同一毫秒内按序列号递增
type Snowflake struct {
	mu       sync.Mutex
	lastMs   int64
	sequence int64
	node     int64
}

func NewSnowflake(workerID, datacenterID int64) (*Snowflake, error) {
	if workerID < 0 || workerID > maxNodeID {
		return nil, errors.Errorf("worker id %d out of range [0,%d]", workerID, maxNodeID)
	}
	if datacenterID < 0 || datacenterID > maxNodeID {
		return nil, errors.Errorf("datacenter id %d out of range [0,%d]", datacenterID, maxNodeID)
	}
	return &Snowflake{node: datacenterID<<datacenterShft | workerID<<workerShift}, nil
}

func (s *Snowflake) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixMilli()
	// 时钟回拨时沿用上一次的时间戳, 保证ID单调
	if now < s.lastMs {
		now = s.lastMs
	}
	if now == s.lastMs {
		s.sequence = (s.sequence + 1) & sequenceMask
		if s.sequence == 0 {
			for now <= s.lastMs {
				time.Sleep(100 * time.Microsecond)
				now = time.Now().UnixMilli()
			}
		}
	} else {
		s.sequence = 0
	}
	s.lastMs = now
	return (now-idEpoch)<<timeShift | s.node | s.sequence
}

var (
	globalSnowflake *Snowflake
	snowflakeOnce   sync.Once
)

// InitSnowflake 在服务启动时根据配置初始化全局生成器
func InitSnowflake(workerID, datacenterID int64) error {
	node, err := NewSnowflake(workerID, datacenterID)
	if err != nil {
		return err
	}
	snowflakeOnce.Do(func() {})
	globalSnowflake = node
	return nil
}

// GenerateID 未初始化时使用节点(1,1)
func GenerateID() int64 {
	snowflakeOnce.Do(func() {
		if globalSnowflake == nil {
			globalSnowflake, _ = NewSnowflake(1, 1)
		}
	})
	return globalSnowflake.NextID()
}
