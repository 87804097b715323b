package kv

import (
	"bytes"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
)

// TTL 信封：对不原生支持过期的后端（内存）把截止时间编进值里.
// 前缀用于区分裸值和信封，换格式时升版本号.
const ttlPrefix = "DVTTL1:"

type ttlEnvelope struct {
	Value   []byte `json:"v"`
	Expires int64  `json:"e,omitempty"` // unix 秒，0 表示永不过期
}

// encodeWithTTL 在 ttl>0 时包一层信封；否则原样返回.
func encodeWithTTL(value []byte, ttl time.Duration) ([]byte, bool, error) {
	if ttl <= 0 {
		return value, false, nil
	}

	env := ttlEnvelope{Value: value, Expires: time.Now().Add(ttl).Unix()}

	b, err := sonic.Marshal(env)
	if err != nil {
		return nil, false, fmt.Errorf("marshal ttl envelope: %w", err)
	}

	return append([]byte(ttlPrefix), b...), true, nil
}

// decodeWithTTL 识别信封并判定过期.
// 返回 (值, 是否已过期, 是否为信封, error).
func decodeWithTTL(b []byte, now time.Time) ([]byte, bool, bool, error) {
	if !bytes.HasPrefix(b, []byte(ttlPrefix)) {
		return b, false, false, nil
	}

	var env ttlEnvelope
	if err := sonic.Unmarshal(b[len(ttlPrefix):], &env); err != nil {
		return nil, false, true, fmt.Errorf("unmarshal ttl envelope: %w", err)
	}

	if env.Expires > 0 && now.Unix() >= env.Expires {
		return nil, true, true, nil
	}

	return env.Value, false, true, nil
}
