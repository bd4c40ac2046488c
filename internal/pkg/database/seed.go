package database

import (
	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/goodman-rb/ai-content-studio/internal/model"
)

// DefaultSettings are the salon-wide facts used when the settings table has
// no row for a key.
var DefaultSettings = map[string]string{
	"Tone_of_Voice":   "Профессионально и дружелюбно",
	"Address":         "Москва",
	"Blacklist_Words": "",
}

var defaultPrompts = []model.PromptTemplate{
	{
		PromptID: "system_base",
		Name:     "Системный промпт",
		Text: "Ты — SMM-маркетолог для элитной клиники косметологии 'Шарм'.\n\n" +
			"Tone-of-Voice: {tone_of_voice}\n" +
			"Адрес: {address}\n" +
			"Запрещенные слова: {blacklist_words}\n" +
			"Целевая аудитория: {age} лет\n\n" +
			"Твоя задача — написать тексты для поста в VK и Telegram.\n\n" +
			"ВАЖНО: ВСЕГДА заканчивай посты призывом к действию и ссылкой для записи: {appointment_url}\n\n" +
			"Верни ответ ТОЛЬКО в формате JSON:\n" +
			"{\n" +
			"  \"vk_post\": \"Подробный текст для VK с эмодзи и призывом к действию\",\n" +
			"  \"tg_post\": \"Короткий емкий текст для Telegram с призывом\",\n" +
			"  \"image_prompt\": \"Детальный промпт для генерации изображения на русском языке (максимум 500 символов, фотореалистичный стиль, без текста на изображении)\"\n" +
			"}",
		Active: true,
	},
	{
		PromptID: "promo_post",
		Name:     "Рекламный пост",
		Text: "Задача: Рекламный пост\n\n" +
			"Услуга: {service_name}\n" +
			"Описание: {service_description}\n" +
			"Оборудование: {service_equipment}\n" +
			"Ключевые слова: {service_keywords}\n" +
			"Акция: {discount_text}\n" +
			"{promo_code}\n\n" +
			"Сгенерируй тексты и промпт для изображения (косметология, процедура, атмосфера салона).",
		Active: true,
	},
	{
		PromptID: "educational_post",
		Name:     "Познавательный пост",
		Text: "Задача: Познавательный пост\n\n" +
			"Тема: {theme}\n\n" +
			"Важно: Сделай пост интересным для аудитории {age} лет.\n" +
			"В конце мягко пригласи на консультацию и добавь ссылку.\n\n" +
			"Для image_prompt создай описание изображения связанного с темой " +
			"(например: красивая кожа, косметология, натуральная красота, wellness, SPA-атмосфера).",
		Active: true,
	},
	{
		PromptID: "analysis_prompt",
		Name:     "Анализ поста",
		Text: "Ты — эксперт по SMM для салонов красоты и косметологии.\n" +
			"Проанализируй созданный пост и дай конкретные советы по улучшению.\n\n" +
			"Оцени по критериям (оценка от 1 до 10):\n" +
			"1. headline_score - Привлекательность заголовка/первого предложения\n" +
			"2. cta_score - Ясность и сила призыва к действию\n" +
			"3. emotion_score - Эмоциональная вовлеченность\n" +
			"4. emoji_score - Использование эмодзи (оптимально = 8-9, слишком много = 3-5)\n" +
			"5. length_score - Оптимальность длины текста\n\n" +
			"Дай 3-4 КОНКРЕТНЫХ совета как улучшить пост.\n" +
			"Советы должны быть практичными и применимыми.\n\n" +
			"Верни ответ ТОЛЬКО в формате JSON:\n" +
			"{\n" +
			"  \"scores\": {\n" +
			"    \"headline\": 8,\n" +
			"    \"cta\": 9,\n" +
			"    \"emotion\": 7,\n" +
			"    \"emoji\": 8,\n" +
			"    \"length\": 9\n" +
			"  },\n" +
			"  \"overall_score\": 8.2,\n" +
			"  \"suggestions\": [\n" +
			"    \"Конкретный совет 1\",\n" +
			"    \"Конкретный совет 2\",\n" +
			"    \"Конкретный совет 3\"\n" +
			"  ],\n" +
			"  \"summary\": \"Краткая общая оценка поста (1-2 предложения)\"\n" +
			"}",
		Active: true,
	},
	{
		PromptID: "improvement_prompt",
		Name:     "Улучшение поста",
		Text: "ВАЖНО: Перепиши тексты постов с учетом следующих рекомендаций:\n\n" +
			"{suggestions}\n\n" +
			"Сохрани общую структуру и ключевые элементы (промокод, призыв к действию, ссылку), " +
			"но улучши тексты согласно советам выше.",
		Active: true,
	},
}

// SeedDefaults stocks an empty prompt table with the default templates and
// fills in missing settings keys. Existing rows are never touched.
func SeedDefaults(db *gorm.DB) error {
	var promptCount int64
	if err := db.Model(&model.PromptTemplate{}).Count(&promptCount).Error; err != nil {
		return err
	}
	if promptCount == 0 {
		klog.V(6).Info("prompt table empty, seeding default templates")
		for i := range defaultPrompts {
			tmpl := defaultPrompts[i]
			if err := db.Create(&tmpl).Error; err != nil {
				return err
			}
		}
	}

	for key, value := range DefaultSettings {
		var count int64
		if err := db.Model(&model.Setting{}).Where("key = ?", key).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&model.Setting{Key: key, Value: value}).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
