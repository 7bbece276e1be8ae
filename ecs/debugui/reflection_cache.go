package debugui

import (
	"reflect"
	"strings"
	"sync"
)

// FieldInfo describes one exported struct field as the inspector shows it.
// Fields tagged `inspect:"-"` are skipped; `inspect:"readonly"` fields are
// shown but never edited.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
	ReadOnly  bool
}

// ReflectionCache memoises FieldInfo lists per struct type.
type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

// GetFields returns the inspectable fields of t, or nil for non-struct types.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fieldCache[t]; ok {
		return cached
	}

	fields := collectFields(t)
	rc.fieldCache[t] = fields
	return fields
}

func collectFields(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []FieldInfo
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		options := strings.Split(field.Tag.Get("inspect"), ",")
		if options[0] == "-" {
			continue
		}

		fieldType := field.Type
		isPointer := fieldType.Kind() == reflect.Ptr
		if isPointer {
			fieldType = fieldType.Elem()
		}

		fields = append(fields, FieldInfo{
			Name:      field.Name,
			Type:      fieldType,
			Index:     i,
			IsPointer: isPointer,
			ReadOnly:  hasOption(options, "readonly"),
		})
	}
	return fields
}

func hasOption(options []string, name string) bool {
	for _, option := range options {
		if strings.TrimSpace(option) == name {
			return true
		}
	}
	return false
}

var globalReflectionCache = NewReflectionCache()
