package debugui

import (
	"fmt"
	"math"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/leveled/ecs"
)

const fieldWidth = 120

// Inspector edits live values in place through reflection. Values must be
// addressable; components and singletons are, because storage hands out
// pointers.
type Inspector struct {
	Config *InspectorConfig
}

// Entity renders every component of id as a tree node.
func (in Inspector) Entity(storage *ecs.Storage, id ecs.EntityId) {
	if id == 0 {
		imgui.Text("No entity selected")
		return
	}
	if !storage.Exists(id) {
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", id))
		return
	}

	archetype := storage.GetArchetypeById(id.ArchetypeId())
	imgui.Text(fmt.Sprintf("Entity %d", id))
	imgui.Text(fmt.Sprintf("Archetype 0x%X", archetype.ID()))

	imgui.PushIDStr(fmt.Sprintf("entity-%d", id))
	for _, compType := range archetype.Types() {
		component := storage.GetComponent(id, compType)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(compType.Name()) {
			in.Value(compType.Name(), reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}
	imgui.PopID()
}

// Resource renders the singleton of type typ.
func (in Inspector) Resource(storage *ecs.Storage, typ reflect.Type) {
	value := storage.GetSingleton(typ)
	if value == nil {
		imgui.Text(fmt.Sprintf("%s is not present", typ))
		return
	}

	imgui.PushIDStr(typ.String())
	in.Value(typ.Name(), reflect.ValueOf(value).Elem())
	imgui.PopID()
}

// Value renders v and reports whether it was changed. Structs without a
// custom renderer are expanded field by field.
func (in Inspector) Value(name string, v reflect.Value) bool {
	if render, ok := in.renderer(v.Type()); ok {
		return render(name, v)
	}

	if v.Kind() == reflect.Struct && !hasStringer(v) {
		changed := false
		for _, field := range globalReflectionCache.GetFields(v.Type()) {
			fieldVal := v.Field(field.Index)
			if field.IsPointer {
				if fieldVal.IsNil() {
					imgui.Text(fmt.Sprintf("%s: nil", field.Name))
					continue
				}
				fieldVal = fieldVal.Elem()
			}
			if field.ReadOnly {
				imgui.Text(fmt.Sprintf("%s: %v", field.Name, fieldVal.Interface()))
				continue
			}
			if in.field(field.Name, fieldVal) {
				changed = true
			}
		}
		return changed
	}

	return in.field(name, v)
}

func (in Inspector) renderer(t reflect.Type) (FieldRenderer, bool) {
	if in.Config == nil {
		return nil, false
	}
	return in.Config.Renderer(t)
}

func hasStringer(v reflect.Value) bool {
	_, ok := v.Interface().(fmt.Stringer)
	return ok && globalReflectionCache.GetFields(v.Type()) == nil
}

func (in Inspector) field(name string, val reflect.Value) bool {
	if render, ok := in.renderer(val.Type()); ok {
		return render(name, val)
	}

	id := "##" + name
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		labelled(name)
		if imgui.InputInt(id, &v) && !val.OverflowInt(int64(v)) {
			val.SetInt(int64(v))
			return true
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(min(val.Uint(), math.MaxInt32))
		labelled(name)
		if imgui.InputInt(id, &v) && v >= 0 && !val.OverflowUint(uint64(v)) {
			val.SetUint(uint64(v))
			return true
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		labelled(name)
		if imgui.InputFloat(id, &v) {
			val.SetFloat(float64(v))
			return true
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			val.SetBool(v)
			return true
		}

	case reflect.String:
		v := val.String()
		labelled(name)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) {
			val.SetString(v)
			return true
		}

	case reflect.Struct:
		if hasStringer(val) {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
			return false
		}
		changed := false
		if imgui.TreeNodeStr(name) {
			changed = in.Value(name, val)
			imgui.TreePop()
		}
		return changed

	case reflect.Slice, reflect.Array:
		imgui.Text(fmt.Sprintf("%s: %s", name, describeSequence(val)))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Func:
		imgui.Text(fmt.Sprintf("%s: func", name))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
	return false
}

func labelled(name string) {
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(fieldWidth)
}

// describeSequence prints Stringers such as uuid.UUID in full and other
// slices or arrays by length.
func describeSequence(val reflect.Value) string {
	if s, ok := val.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	if val.Kind() == reflect.Slice {
		return fmt.Sprintf("[%d items]", val.Len())
	}
	return fmt.Sprintf("%v", val.Interface())
}
