package szx

import "github.com/samcharles93/szx/pkg/snap"

type (
	decodeFunc func(ss *session, s *snap.Snap, p []byte) error
	encodeFunc func(e *encoder, s *snap.Snap) error
)

// blockCodec pairs the read and write side of one block type. A nil decode
// marks a block that is recognised but carries nothing this package keeps.
// Encoders decide for themselves whether the block applies to a snapshot.
type blockCodec struct {
	decode decodeFunc
	encode encodeFunc
}

var registry = map[Tag]blockCodec{
	TagAY:              {decodeAY, encodeAY},
	TagBeta128:         {decodeBeta128, encodeBeta128},
	TagCovox:           {decodeCovox, encodeCovox},
	TagCreator:         {decodeCreator, encodeCreator},
	TagDivIDE:          {decodeDivIDE, encodeDivIDE},
	TagDivIDERAMPage:   {decodeDivIDERAMPage, encodeDivIDERAMPages},
	TagDock:            {decodeDock, encodeDock},
	TagIF1:             {decodeIF1, encodeIF1},
	TagIF2ROM:          {decodeIF2ROM, encodeIF2ROM},
	TagJoystick:        {decodeJoystick, encodeJoystick},
	TagKeyboard:        {decodeKeyboard, encodeKeyboard},
	TagMouse:           {decodeMouse, encodeMouse},
	TagMultiface:       {decodeMultiface, encodeMultiface},
	TagOpus:            {decodeOpus, encodeOpus},
	TagPlusD:           {decodePlusD, encodePlusD},
	TagRAMPage:         {decodeRAMPage, encodeRAMPages},
	TagROM:             {decodeROM, encodeROM},
	TagSimpleIDE:       {decodeSimpleIDE, encodeSimpleIDE},
	TagSpecdrum:        {decodeSpecdrum, encodeSpecdrum},
	TagSpecRegs:        {decodeSpecRegs, encodeSpecRegs},
	TagSpectranet:      {decodeSpectranet, encodeSpectranet},
	TagSpectranetFlash: {decodeSpectranetFlash, encodeSpectranetFlash},
	TagSpectranetRAM:   {decodeSpectranetRAM, encodeSpectranetRAM},
	TagTimexRegs:       {decodeTimexRegs, encodeTimexRegs},
	TagZ80Regs:         {decodeZ80Regs, encodeZ80Regs},
	TagZXATASP:         {decodeZXATASP, encodeZXATASP},
	TagZXATASPRAMPage:  {decodeZXATASPRAMPage, encodeZXATASPRAMPages},
	TagZXCF:            {decodeZXCF, encodeZXCF},
	TagZXCFRAMPage:     {decodeZXCFRAMPage, encodeZXCFRAMPages},
	TagZXPrinter:       {decodeZXPrinter, encodeZXPrinter},

	// Disk images, tape images and hardware with no snapshot state here.
	TagBetaDisk:   {},
	TagDSKFile:    {},
	TagLEC:        {},
	TagLECRAMPage: {},
	TagGS:         {},
	TagGSRAMPage:  {},
	TagMicrodrive: {},
	TagOpusDisk:   {},
	TagPalette:    {},
	TagPlus3Disk:  {},
	TagPlusDDisk:  {},
	TagUSpeech:    {},
	TagZXTape:     {},
}

// writeOrder is the order Encode emits blocks in. Readers accept any order.
var writeOrder = []Tag{
	TagCreator,
	TagZ80Regs,
	TagSpecRegs,
	TagJoystick,
	TagKeyboard,
	TagROM,
	TagRAMPage,
	TagAY,
	TagTimexRegs,
	TagBeta128,
	TagZXATASP,
	TagZXATASPRAMPage,
	TagZXCF,
	TagZXCFRAMPage,
	TagIF2ROM,
	TagDock,
	TagIF1,
	TagOpus,
	TagPlusD,
	TagMouse,
	TagSimpleIDE,
	TagSpecdrum,
	TagDivIDE,
	TagDivIDERAMPage,
	TagSpectranet,
	TagSpectranetFlash,
	TagSpectranetRAM,
	TagZXPrinter,
	TagCovox,
	TagMultiface,
}

// Known reports whether t is a block type this package recognises.
func Known(t Tag) bool {
	_, ok := registry[t]
	return ok
}
