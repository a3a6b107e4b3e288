package zaif

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// 예약 키. 비공개 API 본문에는 클라이언트가 직접 채웁니다.
const (
	MethodKey = "method"
	NonceKey  = "nonce"
)

type entry struct {
	key   string
	value any
}

// Params는 입력 순서가 보존되는 요청 파라미터입니다.
// 값은 스칼라(string, bool, 정수/실수, decimal.Decimal, fmt.Stringer) 또는
// 중첩된 Params이며, 중첩 값은 key[sub]=v 형태로 인코딩됩니다.
type Params struct {
	entries []entry
}

// NewParams는 key, value 쌍을 순서대로 받아 Params를 생성합니다
func NewParams(kv ...any) Params {
	var p Params
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		p.Set(key, kv[i+1])
	}
	return p
}

// Set은 값을 설정합니다. 이미 있는 키는 제자리에서 교체됩니다.
func (p *Params) Set(key string, value any) *Params {
	for i := range p.entries {
		if p.entries[i].key == key {
			p.entries[i].value = value
			return p
		}
	}
	p.entries = append(p.entries, entry{key: key, value: value})
	return p
}

// Get은 키에 해당하는 값을 반환합니다
func (p Params) Get(key string) (any, bool) {
	for _, e := range p.entries {
		if e.key == key {
			return e.value, true
		}
	}
	return nil, false
}

// Has는 키 존재 여부를 반환합니다
func (p Params) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Del은 키를 삭제합니다
func (p *Params) Del(key string) {
	for i, e := range p.entries {
		if e.key == key {
			p.entries = append(p.entries[:i:i], p.entries[i+1:]...)
			return
		}
	}
}

// Keys는 입력 순서대로 키 목록을 반환합니다
func (p Params) Keys() []string {
	keys := make([]string, len(p.entries))
	for i, e := range p.entries {
		keys[i] = e.key
	}
	return keys
}

// Len은 파라미터 개수를 반환합니다
func (p Params) Len() int {
	return len(p.entries)
}

// clone은 원본과 저장 공간을 공유하지 않는 사본을 반환합니다
func (p Params) clone() Params {
	entries := make([]entry, len(p.entries))
	copy(entries, p.entries)
	return Params{entries: entries}
}

// Encode는 application/x-www-form-urlencoded 형식으로 인코딩합니다.
// url.Values와 달리 키를 정렬하지 않고 입력 순서를 유지합니다.
func (p Params) Encode() (string, error) {
	var sb strings.Builder
	if err := p.encodeTo(&sb, ""); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (p Params) encodeTo(sb *strings.Builder, prefix string) error {
	for _, e := range p.entries {
		key := e.key
		if prefix != "" {
			key = prefix + "[" + e.key + "]"
		}

		switch v := e.value.(type) {
		case Params:
			if err := v.encodeTo(sb, key); err != nil {
				return err
			}
			continue
		case *Params:
			if v == nil {
				return fmt.Errorf("파라미터 %q: nil 값", key)
			}
			if err := v.encodeTo(sb, key); err != nil {
				return err
			}
			continue
		}

		s, err := formatValue(e.value)
		if err != nil {
			return fmt.Errorf("파라미터 %q: %w", key, err)
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(s))
	}
	return nil
}

// formatValue는 스칼라 값을 요청에 쓰일 문자열로 변환합니다
func formatValue(value any) (string, error) {
	// 타입이 있는 nil 포인터는 String() 호출 시 패닉이 나므로 먼저 거름
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "", fmt.Errorf("nil 값 (%T)", value)
	}

	switch v := value.(type) {
	case nil:
		return "", fmt.Errorf("nil 값")
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case decimal.Decimal:
		return v.String(), nil
	case fmt.Stringer:
		return v.String(), nil
	}

	// 이름 있는 타입(domain.OrderAction 등)은 기반 종류로 처리
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits()), nil
	}

	return "", fmt.Errorf("지원하지 않는 값 타입: %T", value)
}
