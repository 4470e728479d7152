package ids

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	ItemType     string = "item"
	PropertyType string = "property"
)

// EntityID is implemented by every identifier variant
type EntityID interface {
	Serialization() string
	EntityType() string
	NumericID() int64
}

var idPattern = regexp.MustCompile(`^([QP])([1-9][0-9]*)$`)

//ItemID identifies an item, e.g. Q42
type ItemID struct {
	serialization string
	numericID     int64
}

func (id ItemID) Serialization() string { return id.serialization }
func (id ItemID) EntityType() string    { return ItemType }
func (id ItemID) NumericID() int64      { return id.numericID }
func (id ItemID) String() string        { return id.serialization }

//PropertyID identifies a property, e.g. P31
type PropertyID struct {
	serialization string
	numericID     int64
}

func (id PropertyID) Serialization() string { return id.serialization }
func (id PropertyID) EntityType() string    { return PropertyType }
func (id PropertyID) NumericID() int64      { return id.numericID }
func (id PropertyID) String() string        { return id.serialization }

func (id PropertyID) IsZero() bool {
	return id.serialization == ""
}

// Parse resolves an id string to its typed variant. Lower case prefixes are accepted.
func Parse(serialization string) (EntityID, error) {
	matches := idPattern.FindStringSubmatch(strings.ToUpper(serialization))
	if matches == nil {
		return nil, fmt.Errorf("\"%s\" is not a valid entity id", serialization)
	}

	number, err := strconv.ParseInt(matches[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("\"%s\" is not a valid entity id: %w", serialization, err)
	}

	if matches[1] == "P" {
		return PropertyID{serialization: "P" + matches[2], numericID: number}, nil
	}

	return ItemID{serialization: "Q" + matches[2], numericID: number}, nil
}

func NewItemID(serialization string) (ItemID, error) {
	id, err := Parse(serialization)
	if err != nil {
		return ItemID{}, err
	}

	itemID, ok := id.(ItemID)
	if !ok {
		return ItemID{}, fmt.Errorf("\"%s\" is not an item id", serialization)
	}

	return itemID, nil
}

func NewPropertyID(serialization string) (PropertyID, error) {
	id, err := Parse(serialization)
	if err != nil {
		return PropertyID{}, err
	}

	propertyID, ok := id.(PropertyID)
	if !ok {
		return PropertyID{}, fmt.Errorf("\"%s\" is not a property id", serialization)
	}

	return propertyID, nil
}

// FromNumeric builds an id from an entity type and its numeric part
func FromNumeric(entityType string, numericID int64) (EntityID, error) {
	if numericID <= 0 {
		return nil, fmt.Errorf("numeric id must be positive, got %d", numericID)
	}

	switch entityType {
	case ItemType:
		return ItemID{serialization: fmt.Sprintf("Q%d", numericID), numericID: numericID}, nil
	case PropertyType:
		return PropertyID{serialization: fmt.Sprintf("P%d", numericID), numericID: numericID}, nil
	default:
		return nil, fmt.Errorf("entity type %s not supported", entityType)
	}
}

// MustProperty is a convenience function for tests and static data. It panics on invalid input.
func MustProperty(serialization string) PropertyID {
	id, err := NewPropertyID(serialization)
	if err != nil {
		panic(err)
	}
	return id
}

// MustItem panics on invalid input
func MustItem(serialization string) ItemID {
	id, err := NewItemID(serialization)
	if err != nil {
		panic(err)
	}
	return id
}

// Parser is the default identifier codec
type Parser struct{}

func (Parser) Parse(serialization string) (EntityID, error) {
	return Parse(serialization)
}
