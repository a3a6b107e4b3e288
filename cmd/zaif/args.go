package main

import (
	"fmt"
	"strings"

	"github.com/assist-by/zaif/internal/domain"
	"github.com/assist-by/zaif/internal/exchange/zaif"
)

// parseParams는 key=value 인자를 입력 순서대로 Params로 변환합니다
func parseParams(args []string) (zaif.Params, error) {
	var params zaif.Params
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return zaif.Params{}, fmt.Errorf("key=value 형식이 아닙니다: %q", arg)
		}
		params.Set(key, value)
	}
	return params, nil
}

func argOr(args []string, i int, fallback string) string {
	if i < len(args) && args[i] != "" {
		return args[i]
	}
	return fallback
}

// pairIfSet은 "all"을 통화쌍 미지정으로 취급합니다
func pairIfSet(pair domain.Pair) domain.Pair {
	if pair == "all" {
		return ""
	}
	return pair
}
