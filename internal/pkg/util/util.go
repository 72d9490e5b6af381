package util

import "reflect"

// IsNil 建構子檢查依賴用
// 介面本身為 nil，或裝著 nil 的 pointer/map/chan/slice/func 都算 nil
// 空 struct 的值不算 nil
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Slice, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
