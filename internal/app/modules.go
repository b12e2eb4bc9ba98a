package app

import (
	"github.com/vk/footprintgen/internal/registry"
	"github.com/vk/footprintgen/modules/keyswitch"
)

// coreModules is the list of generator modules compiled into the binary.
var coreModules = []registry.Module{
	&keyswitch.Module{},
}
