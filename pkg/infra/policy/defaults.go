package policy

import "github.com/NeuralTrust/TrustImage/pkg/domain/audit"

const (
	DefaultNudityThreshold   = 0.60
	DefaultZeroShotThreshold = 0.50
	labelFalsifiedChinaMap   = "一张缺少台湾的错误中国地图"
	labelSeparatistFlags     = "台独港独藏独旗帜"
	falsifiedMapThreshold    = 0.40
	separatistFlagsThreshold = 0.60
	reasonExposedContent     = "contains exposed content"
	reasonPolicySensitive    = "policy-sensitive"
	reasonDangerousContent   = "dangerous content"
)

// Region labels emitted by the NudeNet detector.
var (
	nudityUnsafe = []string{
		"BUTTOCKS_EXPOSED",
		"FEMALE_BREAST_EXPOSED",
		"FEMALE_GENITALIA_EXPOSED",
		"MALE_GENITALIA_EXPOSED",
		"ANUS_EXPOSED",
	}
	nuditySafe = []string{
		"FACE_FEMALE",
		"FACE_MALE",
		"FEMALE_BREAST_COVERED",
		"FEMALE_GENITALIA_COVERED",
		"BUTTOCKS_COVERED",
		"ANUS_COVERED",
		"MALE_BREAST_EXPOSED",
		"BELLY_EXPOSED",
		"BELLY_COVERED",
		"FEET_EXPOSED",
		"FEET_COVERED",
		"ARMPITS_EXPOSED",
		"ARMPITS_COVERED",
	}
)

// Chinese-CLIP vocabulary. Mosaic, pixel art, close-up faces and film or
// news stills are listed as benign so collage imagery does not rank an unsafe
// label first.
var (
	regionalSafe = []string{
		"自然风景",
		"城市街道或建筑",
		"艺术画作或插画",
		"普通人像",
		"政治人物或新闻照片",
		"游戏截图或CG画面",
		"电影或电视剧截图",
		"地图",
		"标准世界地图",
		"国旗或外国旗帜",
		"聊天记录或文字截图",
		"表情包或搞笑图片",
		"产品说明书或单据",
		"代码或程序界面",
		"手机或电脑屏幕",
		"汽车或交通工具",
		"美食或饮料",
		"可爱的动物",
		"家具或室内设计",
		"抽象背景或纹理",
		"体育运动或健身",
		"动漫或二次元图片",
		"拼贴艺术或马赛克风格",
		"像素画或网格图案",
		"人脸特写",
	}
	regionalUnsafe = []string{
		labelFalsifiedChinaMap,
		labelSeparatistFlags,
	}
)

// OpenAI CLIP vocabulary, language agnostic safety categories.
var (
	generalSafe = []string{
		"a natural landscape photo",
		"a video game screenshot",
		"a movie or TV show scene",
		"a news photo",
		"a normal portrait photo",
		"a food photo",
		"an art painting",
		"a national flag",
		"a world map",
		"a map of national flags",
		"a meme or funny picture",
		"a screenshot of text or chat",
		"a receipt or document",
		"computer code or screen",
		"a car or vehicle",
		"a cat or dog",
		"a close-up of an object",
		"a sports photo",
		"an anime or cartoon image",
		"a logo or icon",
	}
	generalUnsafe = []string{
		"ISIS terrorist flag or propaganda",
		"real beheading or execution video",
		"illegal drug dealing scene",
		"bloody gore or dead body",
	}
)

// Set maps each classifier kind to its policy.
type Set map[audit.Kind]*LabelPolicy

// Defaults returns a freshly compiled copy of the built-in policies.
func Defaults() Set {
	set := Set{
		audit.KindNudity: {
			Name:             string(audit.KindNudity),
			Rule:             RuleAnyRegion,
			Reason:           reasonExposedContent,
			Safe:             clone(nuditySafe),
			Unsafe:           clone(nudityUnsafe),
			DefaultThreshold: DefaultNudityThreshold,
		},
		audit.KindRegional: {
			Name:   string(audit.KindRegional),
			Rule:   RuleTopLabel,
			Reason: reasonPolicySensitive,
			Safe:   clone(regionalSafe),
			Unsafe: clone(regionalUnsafe),
			Thresholds: map[string]float64{
				labelFalsifiedChinaMap: falsifiedMapThreshold,
				labelSeparatistFlags:   separatistFlagsThreshold,
			},
			DefaultThreshold: DefaultZeroShotThreshold,
		},
		audit.KindGeneral: {
			Name:             string(audit.KindGeneral),
			Rule:             RuleTopLabel,
			Reason:           reasonDangerousContent,
			Safe:             clone(generalSafe),
			Unsafe:           clone(generalUnsafe),
			DefaultThreshold: DefaultZeroShotThreshold,
		},
	}
	for _, p := range set {
		if err := p.Compile(); err != nil {
			panic(err)
		}
	}
	return set
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
