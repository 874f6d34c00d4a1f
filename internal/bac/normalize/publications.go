package normalize

import (
	"strings"

	"github.com/bac-interop/interop-backend/internal/bac/domain"
)

const (
	resourceLinkLabel = "Biblioteca Digital Agropecuaria"
	thumbnailMarker   = "thumbnail"
)

// PublicationRecord flattens one document of a publications search.
func PublicationRecord(doc map[string]any) domain.PublicationRecord {
	display := Map(Child(doc, "pnx", "display"))
	resource, thumb := deliveryLinks(doc)

	return domain.PublicationRecord{
		ID:            First(display["mms"]),
		Title:         First(display["title"]),
		Authors:       Strings(display["creator"]),
		Type:          First(display["type"]),
		Year:          First(display["creationdate"]),
		Region:        First(display["lds05"]),
		SystemLabel:   First(display["lds08"]),
		Crop:          First(display["lds07"]),
		Institution:   First(display["publisher"]),
		Country:       First(display["coverage"]),
		ResourceLink:  resource,
		ThumbnailLink: thumb,
	}
}

// PublicationDetail flattens the single document of a detail lookup. The
// caller's id is echoed back instead of the one the upstream returned.
func PublicationDetail(doc map[string]any, id string) domain.PublicationDetail {
	display := Map(Child(doc, "pnx", "display"))
	addata := Map(Child(doc, "pnx", "addata"))
	resource, thumb := deliveryLinks(doc)

	authors := Strings(addata["au"])
	if len(authors) == 0 {
		authors = Strings(addata["aucorp"])
	}

	year := First(addata["date"])
	if year == nil {
		year = First(display["creationdate"])
	}

	var description *string
	if raw, ok := display["description"]; ok {
		description = First(raw)
		if description == nil {
			description = ptr("")
		}
	}

	return domain.PublicationDetail{
		ID:            id,
		Title:         First(display["title"]),
		Authors:       authors,
		Type:          First(display["type"]),
		Year:          year,
		Region:        First(display["lds05"]),
		SystemLabel:   First(display["lds08"]),
		Crop:          First(display["lds07"]),
		Institution:   First(display["publisher"]),
		Country:       First(display["coverage"]),
		Description:   description,
		ResourceLink:  resource,
		ThumbnailLink: thumb,
	}
}

// deliveryLinks selects the full-text link by exact label and the first
// thumbnail link by case-insensitive label substring.
func deliveryLinks(doc map[string]any) (resource, thumbnail *string) {
	// The first link with a matching label decides, even when its URL is blank.
	var resourceSeen, thumbnailSeen bool
	for _, l := range AsList(Child(doc, "delivery", "link")) {
		label, _ := Scalar(l["displayLabel"])
		url := nonEmpty(Text(l["linkURL"]))
		if !resourceSeen && label == resourceLinkLabel {
			resource, resourceSeen = url, true
		}
		if !thumbnailSeen && strings.Contains(strings.ToLower(label), thumbnailMarker) {
			thumbnail, thumbnailSeen = url, true
		}
	}
	return resource, thumbnail
}
