package server

// DefaultBlueprints is the starter catalog every new room is seeded with. The
// images are opaque 8x8 pixel-art payloads carried as data URLs.
var DefaultBlueprints = map[string]*Tile{
	"void": {
		ID: "void",
		Image: "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAgAAAAICAYAAADED76LAAAAKElEQVQYV2NkYGD4" +
			"D8Q4ASNIQWhoKMPq1atRFMHEwAoImkAHBRQ5EgCbrhQB2kRr+QAAAABJRU5ErkJggg==",
	},
	"grass": {
		ID: "grass",
		Image: "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAgAAAAICAYAAADED76LAAAAOElEQVQYV2NkWMXw" +
			"nwEPYAQpCA0NZVi9ejVWZRgK0BWDFSBrJagA3R64Ceg6YXycCmAmYbgB3QoAnmIiUcgpwTgAAAAASUVORK5CYII=",
	},
	"floor": {
		ID: "floor",
		Image: "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAgAAAAICAYAAADED76LAAAAFElEQVQYV2NctWrV" +
			"fwY8gHFkKAAApMMX8a16WAwAAAAASUVORK5CYII=",
	},
	"wall-horizontal": {
		ID: "wall-horizontal",
		Image: "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAgAAAAICAYAAADED76LAAAALElEQVQYV2MMDQ39" +
			"z4AHMK4KZcCvgGgTVjOEAuFqIITQMAC3gmgF6O6l3JEA6qkZ+Y/de7cAAAAASUVORK5CYII=",
		Wall: true,
	},
	"wall-horizontal-left": {
		ID: "wall-horizontal-left",
		Image: "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAgAAAAICAYAAADED76LAAAANUlEQVQYV2MMDQ39" +
			"z4AHMIIUhDKsxqkErIBoE1YzhALhaiCE0CCAYgVBBTCrcJqAzS0EHQkARNYe+TqxIDUAAAAASUVORK5CYII=",
		Wall: true,
	},
	"wall-horizontal-right": {
		ID: "wall-horizontal-right",
		Image: "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAgAAAAICAYAAADED76LAAAAMklEQVQYV2MMDQ39" +
			"z4AHMK4KZcCpYDVDKAMjSSaAdIQyrAZCBI1iBdEKYG4Gu4FiRwIA43Ue+WpSWc4AAAAASUVORK5CYII=",
		Wall: true,
	},
	"wall-vertical": {
		ID: "wall-vertical",
		Image: "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAgAAAAICAYAAADED76LAAAAG0lEQVQYV2MMDQ39" +
			"H8qwmgEbWM0QysA4MhQAAD2TH/nrMiedAAAAAElFTkSuQmCC",
		Wall: true,
	},
	"wall-corner-bottom-left": {
		ID: "wall-corner-bottom-left",
		Image: "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAgAAAAICAYAAADED76LAAAANklEQVQYV2MMDQ39" +
			"H8qwmgEbWM0QysCITwFIE1gBVu1QQQwTQMaCrITRpCuAWYfTBHT3EHQkAAj0IPmuXnNhAAAAAElFTkSuQmCC",
		Wall: true,
	},
	"wall-corner-bottom-right": {
		ID: "wall-corner-bottom-right",
		Image: "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAgAAAAICAYAAADED76LAAAAPElEQVQYV2MMDQ39" +
			"H8qwmgEbWM0QysC4KpThP1ZZoCBYAcgEXApA4mATQCpB1sBomAa4FUQrQLeKOo4EAB+iIPk9A4o5AAAAAElFTkSuQmCC",
		Wall: true,
	},
	"wall-corner-top-left": {
		ID: "wall-corner-top-left",
		Image: "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAgAAAAICAYAAADED76LAAAAIUlEQVQYV2MMDQ39" +
			"z4AHMIIUhDKsxqkEr4LVDKEMQ0IBAIgQHPlqSMNBAAAAAElFTkSuQmCC",
		Wall: true,
	},
	"wall-corner-top-right": {
		ID: "wall-corner-top-right",
		Image: "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAgAAAAICAYAAADED76LAAAAJUlEQVQYV2MMDQ39" +
			"z4AHMK4KZcCpYDVDKAMjyIRQhtVYzRgyCgBxZhz5QKrMXgAAAABJRU5ErkJggg==",
		Wall: true,
	},
	"wall-door-closed": {
		ID: "wall-door-closed",
		Image: "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAgAAAAICAYAAADED76LAAAAKUlEQVQYV2MMDQ39" +
			"z4AHMK4KZcCvgHITCFqBTcFqhlCws0MZVjNQ7kgAqm0R+QmF/X4AAAAASUVORK5CYII=",
		Wall: true,
		Effects: []EffectRule{
			{Cause: CauseUse, Effects: Effects{NewTransformTileEffect("wall-door-open")}},
		},
	},
	"wall-door-open": {
		ID: "wall-door-open",
		Image: "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAgAAAAICAYAAADED76LAAAAKUlEQVQYV2MMDQ39" +
			"zwAEQBpEYQDGVaEM/1czhOJWQLkJBK2gXAEhRwIAATAc8UKSQEIAAAAASUVORK5CYII=",
		Effects: []EffectRule{
			{Cause: CauseUse, Effects: Effects{NewTransformTileEffect("wall-door-closed")}},
		},
	},
	"wall-lamp-off": {
		ID: "wall-lamp-off",
		Image: "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAgAAAAICAYAAADED76LAAAAQklEQVQYV41PWwoA" +
			"MAiyQ3rJPORWwQaDvYR+zNSMZMMF5sRd8O0gEO4OSTWEKnhGJBVuRW4FtQhRYlwvDqdH7FWyA4jCHvmIXOL4AAAAAElFTkSuQmCC",
		Wall: true,
		Effects: []EffectRule{
			{Cause: CauseUse, Effects: Effects{NewTransformTileEffect("wall-lamp-on")}},
		},
	},
	"wall-lamp-on": {
		ID: "wall-lamp-on",
		Image: "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAgAAAAICAYAAADED76LAAAAQ0lEQVQYV42OQRIA" +
			"IAgC6ZH4SH1khY2HLhknZlyQQXLioeHEG/hq4K4xA9zPr/JhgXzRAkoVJK8mpaVrpCCpjgl0IxdRtCX5PJx3MgAAAABJRU5ErkJggg==",
		Wall: true,
		Effects: []EffectRule{
			{Cause: CauseUse, Effects: Effects{NewTransformTileEffect("wall-lamp-off")}},
		},
	},
	"sign": {
		ID: "sign",
		Image: "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAgAAAAICAYAAADED76LAAAAFElEQVQYV2NctWrV" +
			"fwY8gHFkKAAApMMX8a16WAwAAAAASUVORK5CYII=",
		Effects: []EffectRule{
			{Cause: CauseUse, Effects: Effects{NewOpenDialogEffect("Welcome!\nPlace tiles to build your room.")}},
		},
	},
}
