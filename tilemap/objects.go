package tilemap

import "fmt"

// ObjectType numbers match the ones used by the original game's data files
// and string tables. 0 means no object.
type ObjectType uint8

const (
	NoObject          ObjectType = 0
	Desk              ObjectType = 1
	Cabinet           ObjectType = 2
	Door              ObjectType = 3
	Bench             ObjectType = 4
	Table             ObjectType = 5 // Not in game
	Chair             ObjectType = 6
	DrinksMachine     ObjectType = 7
	Bed               ObjectType = 8
	Inflator          ObjectType = 9
	PoolTable         ObjectType = 10
	ReceptionDesk     ObjectType = 11
	BTable            ObjectType = 12
	Cardio            ObjectType = 13
	Scanner           ObjectType = 14
	ScannerConsole    ObjectType = 15
	Screen            ObjectType = 16
	LitterBomb        ObjectType = 17
	Couch             ObjectType = 18
	Sofa              ObjectType = 19
	Crash             ObjectType = 20 // The trolley in general diagnosis
	TV                ObjectType = 21
	Ultrascan         ObjectType = 22
	DNAFixer          ObjectType = 23
	CastRemover       ObjectType = 24
	HairRestorer      ObjectType = 25
	Slicer            ObjectType = 26
	XRay              ObjectType = 27
	RadiationShield   ObjectType = 28
	XRayViewer        ObjectType = 29
	OpTable           ObjectType = 30
	Lamp              ObjectType = 31
	Sink              ObjectType = 32
	OpSink1           ObjectType = 33
	OpSink2           ObjectType = 34
	SurgeonScreen     ObjectType = 35
	LectureChair      ObjectType = 36
	Projector         ObjectType = 37
	Pharmacy          ObjectType = 39
	Computer          ObjectType = 40
	ChemicalMixer     ObjectType = 41
	BloodMachine      ObjectType = 42
	Extinguisher      ObjectType = 43
	Radiator          ObjectType = 44
	Plant             ObjectType = 45
	Electro           ObjectType = 46
	JellyVat          ObjectType = 47
	Hell              ObjectType = 48
	Bin               ObjectType = 50
	Loo               ObjectType = 51
	DoubleDoor1       ObjectType = 52
	DoubleDoor2       ObjectType = 53
	DeconShower       ObjectType = 54
	Autopsy           ObjectType = 55
	Bookcase          ObjectType = 56
	VideoGame         ObjectType = 57
	EntranceLeftDoor  ObjectType = 58
	EntranceRightDoor ObjectType = 59
	Skeleton          ObjectType = 60
	ComfyChair        ObjectType = 61

	maxObjectType = ComfyChair
)

var objectTypeNames = [...]string{
	NoObject:          "NoObject",
	Desk:              "Desk",
	Cabinet:           "Cabinet",
	Door:              "Door",
	Bench:             "Bench",
	Table:             "Table",
	Chair:             "Chair",
	DrinksMachine:     "DrinksMachine",
	Bed:               "Bed",
	Inflator:          "Inflator",
	PoolTable:         "PoolTable",
	ReceptionDesk:     "ReceptionDesk",
	BTable:            "BTable",
	Cardio:            "Cardio",
	Scanner:           "Scanner",
	ScannerConsole:    "ScannerConsole",
	Screen:            "Screen",
	LitterBomb:        "LitterBomb",
	Couch:             "Couch",
	Sofa:              "Sofa",
	Crash:             "Crash",
	TV:                "TV",
	Ultrascan:         "Ultrascan",
	DNAFixer:          "DNAFixer",
	CastRemover:       "CastRemover",
	HairRestorer:      "HairRestorer",
	Slicer:            "Slicer",
	XRay:              "XRay",
	RadiationShield:   "RadiationShield",
	XRayViewer:        "XRayViewer",
	OpTable:           "OpTable",
	Lamp:              "Lamp",
	Sink:              "Sink",
	OpSink1:           "OpSink1",
	OpSink2:           "OpSink2",
	SurgeonScreen:     "SurgeonScreen",
	LectureChair:      "LectureChair",
	Projector:         "Projector",
	Pharmacy:          "Pharmacy",
	Computer:          "Computer",
	ChemicalMixer:     "ChemicalMixer",
	BloodMachine:      "BloodMachine",
	Extinguisher:      "Extinguisher",
	Radiator:          "Radiator",
	Plant:             "Plant",
	Electro:           "Electro",
	JellyVat:          "JellyVat",
	Hell:              "Hell",
	Bin:               "Bin",
	Loo:               "Loo",
	DoubleDoor1:       "DoubleDoor1",
	DoubleDoor2:       "DoubleDoor2",
	DeconShower:       "DeconShower",
	Autopsy:           "Autopsy",
	Bookcase:          "Bookcase",
	VideoGame:         "VideoGame",
	EntranceLeftDoor:  "EntranceLeftDoor",
	EntranceRightDoor: "EntranceRightDoor",
	Skeleton:          "Skeleton",
	ComfyChair:        "ComfyChair",
}

// Known reports whether t is one of the object types the game defines.
// Values 38, 49 and everything above ComfyChair are unused.
func (t ObjectType) Known() bool {
	return t <= maxObjectType && objectTypeNames[t] != ""
}

func (t ObjectType) IsDoor() bool {
	switch t {
	case Door, DoubleDoor1, DoubleDoor2, EntranceLeftDoor, EntranceRightDoor:
		return true
	}
	return false
}

func (t ObjectType) String() string {
	if t.Known() {
		return objectTypeNames[t]
	}
	return fmt.Sprintf("invalid object type (%d)", int(t))
}
