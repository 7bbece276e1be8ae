package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/leveled/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	Label          string
	ComponentTypes []string
}

// EntityBrowser is a filterable, paged list of every entity. It draws into
// the current window so it can be embedded in a panel.
type EntityBrowser struct {
	// Label names an entity in the list. The default is its id.
	Label func(storage *ecs.Storage, id ecs.EntityId) string

	entities   []EntityInfo
	generation uint64

	selected   ecs.EntityId
	filterText string
	perPage    int
	page       int
}

func NewEntityBrowser(maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{perPage: max(maxEntitiesPerPage, 1)}
}

func (eb *EntityBrowser) Render(storage *ecs.Storage) {
	eb.Refresh(storage)

	imgui.SetNextItemWidth(-1)
	if imgui.InputTextWithHint("##entity-filter", "Filter...", &eb.filterText, imgui.InputTextFlagsNone, nil) {
		eb.page = 0
	}

	filtered := filterEntities(eb.entities, eb.filterText)
	pages := max((len(filtered)+eb.perPage-1)/eb.perPage, 1)
	eb.page = min(eb.page, pages-1)

	start := eb.page * eb.perPage
	end := min(start+eb.perPage, len(filtered))
	for _, entity := range filtered[start:end] {
		label := fmt.Sprintf("%s##%d", entity.Label, entity.ID)
		if imgui.SelectableBoolV(label, eb.selected == entity.ID, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			eb.selected = entity.ID
		}
		if imgui.IsItemHovered() {
			imgui.BeginTooltip()
			imgui.Text(strings.Join(entity.ComponentTypes, "\n"))
			imgui.EndTooltip()
		}
	}

	if pages > 1 {
		if imgui.Button("<") && eb.page > 0 {
			eb.page--
		}
		imgui.SameLine()
		imgui.Text(fmt.Sprintf("%d / %d", eb.page+1, pages))
		imgui.SameLine()
		if imgui.Button(">") && eb.page < pages-1 {
			eb.page++
		}
	}
	imgui.Text(fmt.Sprintf("%d entities", len(filtered)))
}

// Refresh rebuilds the entity list when entities were added or removed.
func (eb *EntityBrowser) Refresh(storage *ecs.Storage) {
	generation := storage.Generation()
	if eb.entities != nil && generation == eb.generation {
		// Labels can be edited in the inspector.
		for i := range eb.entities {
			eb.entities[i].Label = eb.label(storage, eb.entities[i].ID)
		}
		return
	}
	eb.generation = generation

	archetypes := storage.GetArchetypes()
	eb.entities = make([]EntityInfo, 0, len(eb.entities))
	for _, archetype := range archetypes {
		componentTypes := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			componentTypes[i] = t.String()
		}

		for id := range archetype.Iter() {
			eb.entities = append(eb.entities, EntityInfo{
				ID:             id,
				ArchetypeID:    archetype.ID(),
				Label:          eb.label(storage, id),
				ComponentTypes: componentTypes,
			})
		}
	}

	sort.SliceStable(eb.entities, func(i, j int) bool {
		return eb.entities[i].ID < eb.entities[j].ID
	})

	if eb.selected != 0 && !storage.Exists(eb.selected) {
		eb.selected = 0
	}
}

func (eb *EntityBrowser) label(storage *ecs.Storage, id ecs.EntityId) string {
	if eb.Label != nil {
		if label := eb.Label(storage, id); label != "" {
			return label
		}
	}
	return fmt.Sprintf("Entity %d", id)
}

// Entities returns the cached list from the last Refresh.
func (eb *EntityBrowser) Entities() []EntityInfo {
	return eb.entities
}

func (eb *EntityBrowser) Selected() ecs.EntityId {
	return eb.selected
}

func (eb *EntityBrowser) Select(id ecs.EntityId) {
	eb.selected = id
}

// filterEntities keeps entities whose label, id or component types contain
// filter, ignoring case.
func filterEntities(entities []EntityInfo, filter string) []EntityInfo {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	for _, entity := range entities {
		if strings.Contains(strings.ToLower(entity.Label), filter) ||
			strings.Contains(fmt.Sprintf("%d", entity.ID), filter) ||
			strings.Contains(strings.ToLower(strings.Join(entity.ComponentTypes, " ")), filter) {
			filtered = append(filtered, entity)
		}
	}
	return filtered
}
