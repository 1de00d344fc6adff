// Package hdpath 解析和校验 BIP-32/BIP-44 派生路径。
package hdpath

import (
	"fmt"
	"strconv"
	"strings"

	"hdwallet-core/pkg/errno"
)

const (
	// HardenedOffset 硬化索引起点 (2^31)
	HardenedOffset uint32 = 0x80000000
	// AccountPlaceholder 路径模板中的账户占位符
	AccountPlaceholder = "ACCOUNT"
)

// Segment 路径中的一段
type Segment struct {
	Index    uint32
	Hardened bool
}

// ChildNumber 返回写入扩展密钥的 32 位子索引 (硬化时置最高位)
func (s Segment) ChildNumber() uint32 {
	if s.Hardened {
		return s.Index | HardenedOffset
	}
	return s.Index
}

func (s Segment) String() string {
	if s.Hardened {
		return strconv.FormatUint(uint64(s.Index), 10) + "'"
	}
	return strconv.FormatUint(uint64(s.Index), 10)
}

// SegmentFromChildNumber 把 32 位子索引拆回 Segment
func SegmentFromChildNumber(n uint32) Segment {
	return Segment{Index: n &^ HardenedOffset, Hardened: n >= HardenedOffset}
}

// Path 有序的路径段，空 Path 表示根节点 m
type Path []Segment

func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, s := range p {
		sb.WriteByte('/')
		sb.WriteString(s.String())
	}
	return sb.String()
}

// CoinType 返回第二段 (BIP-44 coin type)
func (p Path) CoinType() (Segment, bool) {
	if len(p) < 2 {
		return Segment{}, false
	}
	return p[1], true
}

// Account 返回第三段
func (p Path) Account() (Segment, bool) {
	if len(p) < 3 {
		return Segment{}, false
	}
	return p[2], true
}

// IsFullyHardened 所有段都是硬化段
func (p Path) IsFullyHardened() bool {
	for _, s := range p {
		if !s.Hardened {
			return false
		}
	}
	return true
}

// Parse 解析 m/44'/0'/0'/0/0 格式的路径，硬化标记支持 ' 和 h
func Parse(path string) (Path, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: 路径为空", errno.ErrDerivePath)
	}

	parts := strings.Split(path, "/")
	if parts[0] != "m" && parts[0] != "M" {
		return nil, fmt.Errorf("%w: 路径必须以 m 开头: %q", errno.ErrDerivePath, path)
	}

	segments := make(Path, 0, len(parts)-1)
	for i, part := range parts[1:] {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, fmt.Errorf("%w: 第 %d 段 %q: %v", errno.ErrDerivePath, i+1, part, err)
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

func parseSegment(part string) (Segment, error) {
	hardened := false
	if strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h") || strings.HasSuffix(part, "H") {
		hardened = true
		part = part[:len(part)-1]
	}
	if part == "" {
		return Segment{}, fmt.Errorf("空索引")
	}
	for _, c := range part {
		if c < '0' || c > '9' {
			return Segment{}, fmt.Errorf("索引不是数字")
		}
	}

	val, err := strconv.ParseUint(part, 10, 32)
	if err != nil || uint32(val) >= HardenedOffset {
		return Segment{}, fmt.Errorf("索引必须小于 2^31")
	}
	return Segment{Index: uint32(val), Hardened: hardened}, nil
}

// Expand 把模板中的 ACCOUNT 替换为账户索引后解析
func Expand(template string, account uint32) (Path, error) {
	if account >= HardenedOffset {
		return nil, fmt.Errorf("%w: 账户索引 %d 必须小于 2^31", errno.ErrDerivePath, account)
	}
	return Parse(strings.ReplaceAll(template, AccountPlaceholder, strconv.FormatUint(uint64(account), 10)))
}

// ValidateCoinType 检查第二段是否等于期望的 coin type，防止在错误的链命名空间下派生
func ValidateCoinType(p Path, coinType uint32) error {
	seg, ok := p.CoinType()
	if !ok {
		return fmt.Errorf("%w: 路径 %s 缺少 coin type 段", errno.ErrDerivationTypeNotSupported, p)
	}
	if seg.Index != coinType {
		return fmt.Errorf("%w: 路径 coin type %d 与期望的 %d 不一致", errno.ErrDerivationTypeNotSupported, seg.Index, coinType)
	}
	return nil
}
