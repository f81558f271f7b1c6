package services

import (
	"fmt"
	"log"

	"github.com/ngtkana/senseki-db/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// rosterEntry is one seed row: Japanese display name, English name, and the
// key the fighter portrait assets are named by.
type rosterEntry struct {
	Name       string
	NameEn     string
	FighterKey string
}

var fighterRoster = []rosterEntry{
	{"マリオ", "Mario", "mario"},
	{"ドンキーコング", "Donkey Kong", "donkey"},
	{"リンク", "Link", "link"},
	{"サムス", "Samus", "samus"},
	{"ダークサムス", "Dark Samus", "samusd"},
	{"ヨッシー", "Yoshi", "yoshi"},
	{"カービィ", "Kirby", "kirby"},
	{"フォックス", "Fox", "fox"},
	{"ピカチュウ", "Pikachu", "pikachu"},
	{"ルイージ", "Luigi", "luigi"},
	{"ネス", "Ness", "ness"},
	{"キャプテン・ファルコン", "Captain Falcon", "captain"},
	{"プリン", "Jigglypuff", "purin"},
	{"ピーチ", "Peach", "peach"},
	{"デイジー", "Daisy", "daisy"},
	{"クッパ", "Bowser", "koopa"},
	{"アイスクライマー", "Ice Climbers", "popo"},
	{"シーク", "Sheik", "sheik"},
	{"ゼルダ", "Zelda", "zelda"},
	{"ドクターマリオ", "Dr. Mario", "mariod"},
	{"ピチュー", "Pichu", "pichu"},
	{"ファルコ", "Falco", "falco"},
	{"マルス", "Marth", "marth"},
	{"ルキナ", "Lucina", "lucina"},
	{"こどもリンク", "Young Link", "younglink"},
	{"ガノンドロフ", "Ganondorf", "ganon"},
	{"ミュウツー", "Mewtwo", "mewtwo"},
	{"ロイ", "Roy", "roy"},
	{"クロム", "Chrom", "chrom"},
	{"Mr.ゲーム&ウォッチ", "Mr. Game & Watch", "gamewatch"},
	{"メタナイト", "Meta Knight", "metaknight"},
	{"ピット", "Pit", "pit"},
	{"ブラックピット", "Dark Pit", "pitb"},
	{"ゼロスーツサムス", "Zero Suit Samus", "szerosuit"},
	{"ワリオ", "Wario", "wario"},
	{"スネーク", "Snake", "snake"},
	{"アイク", "Ike", "ike"},
	{"ポケモントレーナー", "Pokemon Trainer", "ptrainer"},
	{"ディディーコング", "Diddy Kong", "diddy"},
	{"リュカ", "Lucas", "lucas"},
	{"ソニック", "Sonic", "sonic"},
	{"デデデ", "King Dedede", "dedede"},
	{"ピクミン&オリマー", "Olimar", "pikmin"},
	{"ルカリオ", "Lucario", "lucario"},
	{"ロボット", "R.O.B.", "robot"},
	{"トゥーンリンク", "Toon Link", "toonlink"},
	{"ウルフ", "Wolf", "wolf"},
	{"むらびと", "Villager", "murabito"},
	{"ロックマン", "Mega Man", "rockman"},
	{"Wii Fit トレーナー", "Wii Fit Trainer", "wiifit"},
	{"ロゼッタ&チコ", "Rosalina & Luma", "rosetta"},
	{"リトル・マック", "Little Mac", "littlemac"},
	{"ゲッコウガ", "Greninja", "gekkouga"},
	{"パルテナ", "Palutena", "palutena"},
	{"パックマン", "PAC-MAN", "pacman"},
	{"ルフレ", "Robin", "reflet"},
	{"シュルク", "Shulk", "shulk"},
	{"クッパJr.", "Bowser Jr.", "koopajr"},
	{"ダックハント", "Duck Hunt", "duckhunt"},
	{"リュウ", "Ryu", "ryu"},
	{"ケン", "Ken", "ken"},
	{"クラウド", "Cloud", "cloud"},
	{"カムイ", "Corrin", "kamui"},
	{"ベヨネッタ", "Bayonetta", "bayonetta"},
	{"インクリング", "Inkling", "inkling"},
	{"リドリー", "Ridley", "ridley"},
	{"シモン", "Simon", "simon"},
	{"リヒター", "Richter", "richter"},
	{"キングクルール", "King K. Rool", "krool"},
	{"しずえ", "Isabelle", "shizue"},
	{"ガオガエン", "Incineroar", "gaogaen"},
	{"パックンフラワー", "Piranha Plant", "packun"},
	{"ジョーカー", "Joker", "jack"},
	{"勇者", "Hero", "brave"},
	{"バンジョー&カズーイ", "Banjo & Kazooie", "buddy"},
	{"テリー", "Terry", "dolly"},
	{"ベレト/ベレス", "Byleth", "master"},
	{"ミェンミェン", "Min Min", "tantan"},
	{"スティーブ", "Steve", "pickel"},
	{"セフィロス", "Sephiroth", "edge"},
	{"ホムラ/ヒカリ", "Pyra/Mythra", "eflame"},
	{"カズヤ", "Kazuya", "demon"},
	{"ソラ", "Sora", "trail"},
	{"Miiファイター(格闘)", "Mii Brawler", "miifighter"},
	{"Miiファイター(剣術)", "Mii Swordfighter", "miiswordsman"},
	{"Miiファイター(射撃)", "Mii Gunner", "miigunner"},
}

// FighterKeyFor derives an asset key for roster entries that arrive without
// one (remote roster sync). Seed data always carries explicit keys.
func FighterKeyFor(nameEn string) string {
	return slug.Make(nameEn)
}

// SeedCharacters upserts the fighter roster. Idempotent: conflicts on
// fighter_key just refresh the names, so re-running at every startup is safe.
func SeedCharacters(db *gorm.DB) error {
	characters := make([]models.Character, 0, len(fighterRoster))
	for _, entry := range fighterRoster {
		key := entry.FighterKey
		if key == "" {
			key = FighterKeyFor(entry.NameEn)
		}
		characters = append(characters, models.Character{
			Name:       entry.Name,
			NameEn:     entry.NameEn,
			FighterKey: key,
		})
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "fighter_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "name_en", "updated_at"}),
	}).Create(&characters).Error; err != nil {
		return fmt.Errorf("failed to seed characters: %w", err)
	}

	log.Printf("✅ Character roster seeded (%d fighters)", len(characters))
	return nil
}
