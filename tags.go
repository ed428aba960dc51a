// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifcodec

import (
	"fmt"
	"strings"
)

// UnknownPrefix is used as prefix for unknown tags.
const UnknownPrefix = "UnknownTag_"

// Tag is the numeric identifier of an Exif value.
// Tags form an open set: unknown tags are decoded and written back as-is.
type Tag uint16

// Part is a bitmask of the IFDs a tag may live in.
// Note that you may combine multiple parts, e.g. PartIFD|PartGPS.
type Part uint8

const (
	// PartIFD is the primary image file directory (IFD0).
	PartIFD Part = 1 << iota
	// PartExif is the Exif sub-IFD.
	PartExif
	// PartGPS is the GPS sub-IFD.
	PartGPS

	// PartsAll is all three parts.
	PartsAll = PartIFD | PartExif | PartGPS
)

// Has returns true if the given part is set.
func (p Part) Has(part Part) bool {
	return p&part != 0
}

// Remove removes the given part.
func (p Part) Remove(part Part) Part {
	p &= ^part
	return p
}

// IsZero returns true if no part is set.
func (p Part) IsZero() bool {
	return p == 0
}

func (p Part) String() string {
	if p.IsZero() {
		return "None"
	}
	var parts []string
	if p.Has(PartIFD) {
		parts = append(parts, "IFD")
	}
	if p.Has(PartExif) {
		parts = append(parts, "Exif")
	}
	if p.Has(PartGPS) {
		parts = append(parts, "GPS")
	}
	if rest := p.Remove(PartsAll); !rest.IsZero() {
		parts = append(parts, fmt.Sprintf("Part(%d)", uint8(rest)))
	}
	return strings.Join(parts, "|")
}

// IFD0 tags.
const (
	TagNewSubfileType              Tag = 0x00fe
	TagSubfileType                 Tag = 0x00ff
	TagImageWidth                  Tag = 0x0100
	TagImageLength                 Tag = 0x0101
	TagBitsPerSample               Tag = 0x0102
	TagCompression                 Tag = 0x0103
	TagPhotometricInterpretation   Tag = 0x0106
	TagThresholding                Tag = 0x0107
	TagFillOrder                   Tag = 0x010a
	TagDocumentName                Tag = 0x010d
	TagImageDescription            Tag = 0x010e
	TagMake                        Tag = 0x010f
	TagModel                       Tag = 0x0110
	TagStripOffsets                Tag = 0x0111
	TagOrientation                 Tag = 0x0112
	TagSamplesPerPixel             Tag = 0x0115
	TagRowsPerStrip                Tag = 0x0116
	TagStripByteCounts             Tag = 0x0117
	TagXResolution                 Tag = 0x011a
	TagYResolution                 Tag = 0x011b
	TagPlanarConfiguration         Tag = 0x011c
	TagPageName                    Tag = 0x011d
	TagResolutionUnit              Tag = 0x0128
	TagTransferFunction            Tag = 0x012d
	TagSoftware                    Tag = 0x0131
	TagDateTime                    Tag = 0x0132
	TagArtist                      Tag = 0x013b
	TagHostComputer                Tag = 0x013c
	TagWhitePoint                  Tag = 0x013e
	TagPrimaryChromaticities       Tag = 0x013f
	TagJPEGInterchangeFormat       Tag = 0x0201
	TagJPEGInterchangeFormatLength Tag = 0x0202
	TagYCbCrCoefficients           Tag = 0x0211
	TagYCbCrSubsampling            Tag = 0x0212
	TagYCbCrPositioning            Tag = 0x0213
	TagReferenceBlackWhite         Tag = 0x0214
	TagXMP                         Tag = 0x02bc
	TagRating                      Tag = 0x4746
	TagRatingPercent               Tag = 0x4749
	TagCopyright                   Tag = 0x8298
	TagIPTC                        Tag = 0x83bb
	TagExifOffset                  Tag = 0x8769
	TagInterColorProfile           Tag = 0x8773
	TagGPSInfo                     Tag = 0x8825
	TagXPTitle                     Tag = 0x9c9b
	TagXPComment                   Tag = 0x9c9c
	TagXPAuthor                    Tag = 0x9c9d
	TagXPKeywords                  Tag = 0x9c9e
	TagXPSubject                   Tag = 0x9c9f
	TagPrintIM                     Tag = 0xc4a5
)

// Exif sub-IFD tags.
const (
	TagExposureTime              Tag = 0x829a
	TagFNumber                   Tag = 0x829d
	TagExposureProgram           Tag = 0x8822
	TagSpectralSensitivity       Tag = 0x8824
	TagISOSpeedRatings           Tag = 0x8827
	TagOECF                      Tag = 0x8828
	TagSensitivityType           Tag = 0x8830
	TagStandardOutputSensitivity Tag = 0x8831
	TagRecommendedExposureIndex  Tag = 0x8832
	TagISOSpeed                  Tag = 0x8833
	TagExifVersion               Tag = 0x9000
	TagDateTimeOriginal          Tag = 0x9003
	TagDateTimeDigitized         Tag = 0x9004
	TagOffsetTime                Tag = 0x9010
	TagOffsetTimeOriginal        Tag = 0x9011
	TagOffsetTimeDigitized       Tag = 0x9012
	TagComponentsConfiguration   Tag = 0x9101
	TagCompressedBitsPerPixel    Tag = 0x9102
	TagShutterSpeedValue         Tag = 0x9201
	TagApertureValue             Tag = 0x9202
	TagBrightnessValue           Tag = 0x9203
	TagExposureBiasValue         Tag = 0x9204
	TagMaxApertureValue          Tag = 0x9205
	TagSubjectDistance           Tag = 0x9206
	TagMeteringMode              Tag = 0x9207
	TagLightSource               Tag = 0x9208
	TagFlash                     Tag = 0x9209
	TagFocalLength               Tag = 0x920a
	TagSubjectArea               Tag = 0x9214
	TagMakerNote                 Tag = 0x927c
	TagUserComment               Tag = 0x9286
	TagSubsecTime                Tag = 0x9290
	TagSubsecTimeOriginal        Tag = 0x9291
	TagSubsecTimeDigitized       Tag = 0x9292
	TagTemperature               Tag = 0x9400
	TagHumidity                  Tag = 0x9401
	TagPressure                  Tag = 0x9402
	TagWaterDepth                Tag = 0x9403
	TagAcceleration              Tag = 0x9404
	TagCameraElevationAngle      Tag = 0x9405
	TagFlashpixVersion           Tag = 0xa000
	TagColorSpace                Tag = 0xa001
	TagPixelXDimension           Tag = 0xa002
	TagPixelYDimension           Tag = 0xa003
	TagRelatedSoundFile          Tag = 0xa004
	TagFlashEnergy               Tag = 0xa20b
	TagSpatialFrequencyResponse  Tag = 0xa20c
	TagFocalPlaneXResolution     Tag = 0xa20e
	TagFocalPlaneYResolution     Tag = 0xa20f
	TagFocalPlaneResolutionUnit  Tag = 0xa210
	TagSubjectLocation           Tag = 0xa214
	TagExposureIndex             Tag = 0xa215
	TagSensingMethod             Tag = 0xa217
	TagFileSource                Tag = 0xa300
	TagSceneType                 Tag = 0xa301
	TagCFAPattern                Tag = 0xa302
	TagCustomRendered            Tag = 0xa401
	TagExposureMode              Tag = 0xa402
	TagWhiteBalance              Tag = 0xa403
	TagDigitalZoomRatio          Tag = 0xa404
	TagFocalLengthIn35mmFilm     Tag = 0xa405
	TagSceneCaptureType          Tag = 0xa406
	TagGainControl               Tag = 0xa407
	TagContrast                  Tag = 0xa408
	TagSaturation                Tag = 0xa409
	TagSharpness                 Tag = 0xa40a
	TagDeviceSettingDescription  Tag = 0xa40b
	TagSubjectDistanceRange      Tag = 0xa40c
	TagImageUniqueID             Tag = 0xa420
	TagOwnerName                 Tag = 0xa430
	TagSerialNumber              Tag = 0xa431
	TagLensSpecification         Tag = 0xa432
	TagLensMake                  Tag = 0xa433
	TagLensModel                 Tag = 0xa434
	TagLensSerialNumber          Tag = 0xa435
	TagGamma                     Tag = 0xa500
)

// GPS sub-IFD tags.
const (
	TagGPSVersionID         Tag = 0x0000
	TagGPSLatitudeRef       Tag = 0x0001
	TagGPSLatitude          Tag = 0x0002
	TagGPSLongitudeRef      Tag = 0x0003
	TagGPSLongitude         Tag = 0x0004
	TagGPSAltitudeRef       Tag = 0x0005
	TagGPSAltitude          Tag = 0x0006
	TagGPSTimestamp         Tag = 0x0007
	TagGPSSatellites        Tag = 0x0008
	TagGPSStatus            Tag = 0x0009
	TagGPSMeasureMode       Tag = 0x000a
	TagGPSDOP               Tag = 0x000b
	TagGPSSpeedRef          Tag = 0x000c
	TagGPSSpeed             Tag = 0x000d
	TagGPSTrackRef          Tag = 0x000e
	TagGPSTrack             Tag = 0x000f
	TagGPSImgDirectionRef   Tag = 0x0010
	TagGPSImgDirection      Tag = 0x0011
	TagGPSMapDatum          Tag = 0x0012
	TagGPSDestLatitudeRef   Tag = 0x0013
	TagGPSDestLatitude      Tag = 0x0014
	TagGPSDestLongitudeRef  Tag = 0x0015
	TagGPSDestLongitude     Tag = 0x0016
	TagGPSDestBearingRef    Tag = 0x0017
	TagGPSDestBearing       Tag = 0x0018
	TagGPSDestDistanceRef   Tag = 0x0019
	TagGPSDestDistance      Tag = 0x001a
	TagGPSProcessingMethod  Tag = 0x001b
	TagGPSAreaInformation   Tag = 0x001c
	TagGPSDateStamp         Tag = 0x001d
	TagGPSDifferential      Tag = 0x001e
	TagGPSHPositioningError Tag = 0x001f
)

type tagDefinition struct {
	name     string
	dataType DataType
	isArray  bool
	part     Part
}

var tagDefinitions = map[Tag]tagDefinition{
	TagNewSubfileType:              {"NewSubfileType", DataTypeLong, false, PartIFD},
	TagSubfileType:                 {"SubfileType", DataTypeShort, false, PartIFD},
	TagImageWidth:                  {"ImageWidth", DataTypeLong, false, PartIFD},
	TagImageLength:                 {"ImageLength", DataTypeLong, false, PartIFD},
	TagBitsPerSample:               {"BitsPerSample", DataTypeShort, true, PartIFD},
	TagCompression:                 {"Compression", DataTypeShort, false, PartIFD},
	TagPhotometricInterpretation:   {"PhotometricInterpretation", DataTypeShort, false, PartIFD},
	TagThresholding:                {"Thresholding", DataTypeShort, false, PartIFD},
	TagFillOrder:                   {"FillOrder", DataTypeShort, false, PartIFD},
	TagDocumentName:                {"DocumentName", DataTypeString, false, PartIFD},
	TagImageDescription:            {"ImageDescription", DataTypeString, false, PartIFD},
	TagMake:                        {"Make", DataTypeString, false, PartIFD},
	TagModel:                       {"Model", DataTypeString, false, PartIFD},
	TagStripOffsets:                {"StripOffsets", DataTypeLong, true, PartIFD},
	TagOrientation:                 {"Orientation", DataTypeShort, false, PartIFD},
	TagSamplesPerPixel:             {"SamplesPerPixel", DataTypeShort, false, PartIFD},
	TagRowsPerStrip:                {"RowsPerStrip", DataTypeLong, false, PartIFD},
	TagStripByteCounts:             {"StripByteCounts", DataTypeLong, true, PartIFD},
	TagXResolution:                 {"XResolution", DataTypeRational, false, PartIFD},
	TagYResolution:                 {"YResolution", DataTypeRational, false, PartIFD},
	TagPlanarConfiguration:         {"PlanarConfiguration", DataTypeShort, false, PartIFD},
	TagPageName:                    {"PageName", DataTypeString, false, PartIFD},
	TagResolutionUnit:              {"ResolutionUnit", DataTypeShort, false, PartIFD},
	TagTransferFunction:            {"TransferFunction", DataTypeShort, true, PartIFD},
	TagSoftware:                    {"Software", DataTypeString, false, PartIFD},
	TagDateTime:                    {"DateTime", DataTypeString, false, PartIFD},
	TagArtist:                      {"Artist", DataTypeString, false, PartIFD},
	TagHostComputer:                {"HostComputer", DataTypeString, false, PartIFD},
	TagWhitePoint:                  {"WhitePoint", DataTypeRational, true, PartIFD},
	TagPrimaryChromaticities:       {"PrimaryChromaticities", DataTypeRational, true, PartIFD},
	TagJPEGInterchangeFormat:       {"JPEGInterchangeFormat", DataTypeLong, false, PartIFD},
	TagJPEGInterchangeFormatLength: {"JPEGInterchangeFormatLength", DataTypeLong, false, PartIFD},
	TagYCbCrCoefficients:           {"YCbCrCoefficients", DataTypeRational, true, PartIFD},
	TagYCbCrSubsampling:            {"YCbCrSubsampling", DataTypeShort, true, PartIFD},
	TagYCbCrPositioning:            {"YCbCrPositioning", DataTypeShort, false, PartIFD},
	TagReferenceBlackWhite:         {"ReferenceBlackWhite", DataTypeRational, true, PartIFD},
	TagXMP:                         {"XMP", DataTypeByte, true, PartIFD},
	TagRating:                      {"Rating", DataTypeShort, false, PartIFD},
	TagRatingPercent:               {"RatingPercent", DataTypeShort, false, PartIFD},
	TagCopyright:                   {"Copyright", DataTypeString, false, PartIFD},
	TagIPTC:                        {"IPTC", DataTypeLong, true, PartIFD},
	TagExifOffset:                  {"ExifOffset", DataTypeLong, false, PartIFD},
	TagInterColorProfile:           {"InterColorProfile", DataTypeUndefined, true, PartIFD},
	TagGPSInfo:                     {"GPSInfo", DataTypeLong, false, PartIFD},
	TagXPTitle:                     {"XPTitle", DataTypeByte, true, PartIFD},
	TagXPComment:                   {"XPComment", DataTypeByte, true, PartIFD},
	TagXPAuthor:                    {"XPAuthor", DataTypeByte, true, PartIFD},
	TagXPKeywords:                  {"XPKeywords", DataTypeByte, true, PartIFD},
	TagXPSubject:                   {"XPSubject", DataTypeByte, true, PartIFD},
	TagPrintIM:                     {"PrintIM", DataTypeUndefined, true, PartIFD},

	TagExposureTime:              {"ExposureTime", DataTypeRational, false, PartExif},
	TagFNumber:                   {"FNumber", DataTypeRational, false, PartExif},
	TagExposureProgram:           {"ExposureProgram", DataTypeShort, false, PartExif},
	TagSpectralSensitivity:       {"SpectralSensitivity", DataTypeString, false, PartExif},
	TagISOSpeedRatings:           {"ISOSpeedRatings", DataTypeShort, true, PartExif},
	TagOECF:                      {"OECF", DataTypeUndefined, true, PartExif},
	TagSensitivityType:           {"SensitivityType", DataTypeShort, false, PartExif},
	TagStandardOutputSensitivity: {"StandardOutputSensitivity", DataTypeLong, false, PartExif},
	TagRecommendedExposureIndex:  {"RecommendedExposureIndex", DataTypeLong, false, PartExif},
	TagISOSpeed:                  {"ISOSpeed", DataTypeLong, false, PartExif},
	TagExifVersion:               {"ExifVersion", DataTypeUndefined, true, PartExif},
	TagDateTimeOriginal:          {"DateTimeOriginal", DataTypeString, false, PartExif},
	TagDateTimeDigitized:         {"DateTimeDigitized", DataTypeString, false, PartExif},
	TagOffsetTime:                {"OffsetTime", DataTypeString, false, PartExif},
	TagOffsetTimeOriginal:        {"OffsetTimeOriginal", DataTypeString, false, PartExif},
	TagOffsetTimeDigitized:       {"OffsetTimeDigitized", DataTypeString, false, PartExif},
	TagComponentsConfiguration:   {"ComponentsConfiguration", DataTypeUndefined, true, PartExif},
	TagCompressedBitsPerPixel:    {"CompressedBitsPerPixel", DataTypeRational, false, PartExif},
	TagShutterSpeedValue:         {"ShutterSpeedValue", DataTypeSignedRational, false, PartExif},
	TagApertureValue:             {"ApertureValue", DataTypeRational, false, PartExif},
	TagBrightnessValue:           {"BrightnessValue", DataTypeSignedRational, false, PartExif},
	TagExposureBiasValue:         {"ExposureBiasValue", DataTypeSignedRational, false, PartExif},
	TagMaxApertureValue:          {"MaxApertureValue", DataTypeRational, false, PartExif},
	TagSubjectDistance:           {"SubjectDistance", DataTypeRational, false, PartExif},
	TagMeteringMode:              {"MeteringMode", DataTypeShort, false, PartExif},
	TagLightSource:               {"LightSource", DataTypeShort, false, PartExif},
	TagFlash:                     {"Flash", DataTypeShort, false, PartExif},
	TagFocalLength:               {"FocalLength", DataTypeRational, false, PartExif},
	TagSubjectArea:               {"SubjectArea", DataTypeShort, true, PartExif},
	TagMakerNote:                 {"MakerNote", DataTypeUndefined, true, PartExif},
	TagUserComment:               {"UserComment", DataTypeUndefined, true, PartExif},
	TagSubsecTime:                {"SubsecTime", DataTypeString, false, PartExif},
	TagSubsecTimeOriginal:        {"SubsecTimeOriginal", DataTypeString, false, PartExif},
	TagSubsecTimeDigitized:       {"SubsecTimeDigitized", DataTypeString, false, PartExif},
	TagTemperature:               {"Temperature", DataTypeSignedRational, false, PartExif},
	TagHumidity:                  {"Humidity", DataTypeRational, false, PartExif},
	TagPressure:                  {"Pressure", DataTypeRational, false, PartExif},
	TagWaterDepth:                {"WaterDepth", DataTypeSignedRational, false, PartExif},
	TagAcceleration:              {"Acceleration", DataTypeRational, false, PartExif},
	TagCameraElevationAngle:      {"CameraElevationAngle", DataTypeSignedRational, false, PartExif},
	TagFlashpixVersion:           {"FlashpixVersion", DataTypeUndefined, true, PartExif},
	TagColorSpace:                {"ColorSpace", DataTypeShort, false, PartExif},
	TagPixelXDimension:           {"PixelXDimension", DataTypeLong, false, PartExif},
	TagPixelYDimension:           {"PixelYDimension", DataTypeLong, false, PartExif},
	TagRelatedSoundFile:          {"RelatedSoundFile", DataTypeString, false, PartExif},
	TagFlashEnergy:               {"FlashEnergy", DataTypeRational, false, PartExif},
	TagSpatialFrequencyResponse:  {"SpatialFrequencyResponse", DataTypeUndefined, true, PartExif},
	TagFocalPlaneXResolution:     {"FocalPlaneXResolution", DataTypeRational, false, PartExif},
	TagFocalPlaneYResolution:     {"FocalPlaneYResolution", DataTypeRational, false, PartExif},
	TagFocalPlaneResolutionUnit:  {"FocalPlaneResolutionUnit", DataTypeShort, false, PartExif},
	TagSubjectLocation:           {"SubjectLocation", DataTypeShort, true, PartExif},
	TagExposureIndex:             {"ExposureIndex", DataTypeRational, false, PartExif},
	TagSensingMethod:             {"SensingMethod", DataTypeShort, false, PartExif},
	TagFileSource:                {"FileSource", DataTypeUndefined, false, PartExif},
	TagSceneType:                 {"SceneType", DataTypeUndefined, false, PartExif},
	TagCFAPattern:                {"CFAPattern", DataTypeUndefined, true, PartExif},
	TagCustomRendered:            {"CustomRendered", DataTypeShort, false, PartExif},
	TagExposureMode:              {"ExposureMode", DataTypeShort, false, PartExif},
	TagWhiteBalance:              {"WhiteBalance", DataTypeShort, false, PartExif},
	TagDigitalZoomRatio:          {"DigitalZoomRatio", DataTypeRational, false, PartExif},
	TagFocalLengthIn35mmFilm:     {"FocalLengthIn35mmFilm", DataTypeShort, false, PartExif},
	TagSceneCaptureType:          {"SceneCaptureType", DataTypeShort, false, PartExif},
	TagGainControl:               {"GainControl", DataTypeShort, false, PartExif},
	TagContrast:                  {"Contrast", DataTypeShort, false, PartExif},
	TagSaturation:                {"Saturation", DataTypeShort, false, PartExif},
	TagSharpness:                 {"Sharpness", DataTypeShort, false, PartExif},
	TagDeviceSettingDescription:  {"DeviceSettingDescription", DataTypeUndefined, true, PartExif},
	TagSubjectDistanceRange:      {"SubjectDistanceRange", DataTypeShort, false, PartExif},
	TagImageUniqueID:             {"ImageUniqueID", DataTypeString, false, PartExif},
	TagOwnerName:                 {"OwnerName", DataTypeString, false, PartExif},
	TagSerialNumber:              {"SerialNumber", DataTypeString, false, PartExif},
	TagLensSpecification:         {"LensSpecification", DataTypeRational, true, PartExif},
	TagLensMake:                  {"LensMake", DataTypeString, false, PartExif},
	TagLensModel:                 {"LensModel", DataTypeString, false, PartExif},
	TagLensSerialNumber:          {"LensSerialNumber", DataTypeString, false, PartExif},
	TagGamma:                     {"Gamma", DataTypeRational, false, PartExif},

	TagGPSVersionID:         {"GPSVersionID", DataTypeByte, true, PartGPS},
	TagGPSLatitudeRef:       {"GPSLatitudeRef", DataTypeString, false, PartGPS},
	TagGPSLatitude:          {"GPSLatitude", DataTypeRational, true, PartGPS},
	TagGPSLongitudeRef:      {"GPSLongitudeRef", DataTypeString, false, PartGPS},
	TagGPSLongitude:         {"GPSLongitude", DataTypeRational, true, PartGPS},
	TagGPSAltitudeRef:       {"GPSAltitudeRef", DataTypeByte, false, PartGPS},
	TagGPSAltitude:          {"GPSAltitude", DataTypeRational, false, PartGPS},
	TagGPSTimestamp:         {"GPSTimestamp", DataTypeRational, true, PartGPS},
	TagGPSSatellites:        {"GPSSatellites", DataTypeString, false, PartGPS},
	TagGPSStatus:            {"GPSStatus", DataTypeString, false, PartGPS},
	TagGPSMeasureMode:       {"GPSMeasureMode", DataTypeString, false, PartGPS},
	TagGPSDOP:               {"GPSDOP", DataTypeRational, false, PartGPS},
	TagGPSSpeedRef:          {"GPSSpeedRef", DataTypeString, false, PartGPS},
	TagGPSSpeed:             {"GPSSpeed", DataTypeRational, false, PartGPS},
	TagGPSTrackRef:          {"GPSTrackRef", DataTypeString, false, PartGPS},
	TagGPSTrack:             {"GPSTrack", DataTypeRational, false, PartGPS},
	TagGPSImgDirectionRef:   {"GPSImgDirectionRef", DataTypeString, false, PartGPS},
	TagGPSImgDirection:      {"GPSImgDirection", DataTypeRational, false, PartGPS},
	TagGPSMapDatum:          {"GPSMapDatum", DataTypeString, false, PartGPS},
	TagGPSDestLatitudeRef:   {"GPSDestLatitudeRef", DataTypeString, false, PartGPS},
	TagGPSDestLatitude:      {"GPSDestLatitude", DataTypeRational, true, PartGPS},
	TagGPSDestLongitudeRef:  {"GPSDestLongitudeRef", DataTypeString, false, PartGPS},
	TagGPSDestLongitude:     {"GPSDestLongitude", DataTypeRational, true, PartGPS},
	TagGPSDestBearingRef:    {"GPSDestBearingRef", DataTypeString, false, PartGPS},
	TagGPSDestBearing:       {"GPSDestBearing", DataTypeRational, false, PartGPS},
	TagGPSDestDistanceRef:   {"GPSDestDistanceRef", DataTypeString, false, PartGPS},
	TagGPSDestDistance:      {"GPSDestDistance", DataTypeRational, false, PartGPS},
	TagGPSProcessingMethod:  {"GPSProcessingMethod", DataTypeUndefined, true, PartGPS},
	TagGPSAreaInformation:   {"GPSAreaInformation", DataTypeUndefined, true, PartGPS},
	TagGPSDateStamp:         {"GPSDateStamp", DataTypeString, false, PartGPS},
	TagGPSDifferential:      {"GPSDifferential", DataTypeShort, false, PartGPS},
	TagGPSHPositioningError: {"GPSHPositioningError", DataTypeRational, false, PartGPS},
}

var tagsByName = map[string]Tag{}

func init() {
	for tag, def := range tagDefinitions {
		tagsByName[def.name] = tag
	}
}

// TagByName looks up a known tag by its name, e.g. "Make".
func TagByName(name string) (Tag, bool) {
	tag, found := tagsByName[name]
	return tag, found
}

// IsKnown reports whether t has a definition in the tag registry.
func (t Tag) IsKnown() bool {
	_, found := tagDefinitions[t]
	return found
}

// Part returns the part a known tag belongs to.
// Unknown tags are reported as PartIFD.
func (t Tag) Part() Part {
	if def, found := tagDefinitions[t]; found {
		return def.part
	}
	return PartIFD
}

// DataType returns the expected data type of a known tag,
// DataTypeUnknown if the tag is not known.
func (t Tag) DataType() DataType {
	return tagDefinitions[t].dataType
}

// isPointer reports whether t is one of the sub-IFD pointers
// synthesized by the writer and consumed by the reader.
func (t Tag) isPointer() bool {
	return t == TagExifOffset || t == TagGPSInfo
}

func (t Tag) String() string {
	if def, found := tagDefinitions[t]; found {
		return def.name
	}
	return fmt.Sprintf("%s0x%x", UnknownPrefix, uint16(t))
}
