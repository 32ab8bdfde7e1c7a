// Package content ships the built-in starter course. The seed command
// loads it into storage; deployments with their own content pipeline can
// skip it entirely.
package content

import (
	"fmt"

	"github.com/marufibnehossain/Language-Learning-Website/internal/domain"
	"github.com/marufibnehossain/Language-Learning-Website/internal/infra/sqlite"
)

// Seed upserts the starter course. Idempotent: re-running refreshes the
// rows in place without touching user data.
func Seed(db *sqlite.DB) error {
	course := StarterCourse()
	if err := db.UpsertCourse(course); err != nil {
		return fmt.Errorf("seed course %s: %w", course.ID, err)
	}
	for _, unit := range course.Units {
		if err := db.UpsertUnit(unit); err != nil {
			return fmt.Errorf("seed unit %s: %w", unit.ID, err)
		}
		for _, lesson := range unit.Lessons {
			if err := db.UpsertLesson(lesson); err != nil {
				return fmt.Errorf("seed lesson %s: %w", lesson.ID, err)
			}
			for _, ex := range lesson.Exercises {
				ex.LessonID = lesson.ID
				if err := db.UpsertExercise(ex); err != nil {
					return fmt.Errorf("seed exercise %s: %w", ex.ID, err)
				}
			}
		}
	}
	return nil
}

// StarterCourse is the beginner Spanish course bundled with the service.
func StarterCourse() domain.Course {
	return domain.Course{
		ID:          "course_spanish_101",
		Title:       "Spanish for Beginners",
		Description: "Learn the basics of Spanish",
		Language:    "Spanish",
		Units: []domain.Unit{
			{
				ID:          "unit_1",
				CourseID:    "course_spanish_101",
				Title:       "Unit 1: Greetings & Basics",
				Description: "Learn how to greet people and introduce yourself",
				Order:       1,
				Lessons: []domain.Lesson{
					{
						ID: "lesson_1_1", UnitID: "unit_1", Title: "Greetings",
						Description: "Learn basic greetings", Order: 1,
						XPReward: 20, Type: domain.LessonGraded,
						Exercises: []domain.Exercise{
							mcq("ex_1_1_1", "Good morning", "Buenos días",
								[]string{"Buenos días", "Buenas noches", "Gracias", "Por favor"},
								"'Buenos días' is used in the morning."),
							mcq("ex_1_1_2", "Hello", "Hola",
								[]string{"Hola", "Adiós", "Gracias", "De nada"},
								"'Hola' means hello in Spanish."),
							fillBlank("ex_1_1_3", "___ días (Good morning)", "Buenos",
								"'Buenos días' means good morning."),
							mcq("ex_1_1_4", "Goodbye", "Adiós",
								[]string{"Hola", "Adiós", "Buenos días", "Gracias"},
								"'Adiós' means goodbye."),
							fillBlank("ex_1_1_5", "¿Cómo estás? (How are ___)", "you",
								"'¿Cómo estás?' means 'How are you?'"),
							mcq("ex_1_1_6", "Thank you", "Gracias",
								[]string{"Por favor", "Gracias", "De nada", "Hola"},
								"'Gracias' means thank you."),
							fillBlank("ex_1_1_7", "Mucho ___ (Nice to meet you)", "gusto",
								"'Mucho gusto' means nice to meet you."),
							mcq("ex_1_1_8", "Please", "Por favor",
								[]string{"Gracias", "Por favor", "De nada", "Adiós"},
								"'Por favor' means please."),
						},
					},
					{
						ID: "lesson_1_2", UnitID: "unit_1", Title: "Introductions",
						Description: "Learn how to introduce yourself", Order: 2,
						XPReward: 20, Type: domain.LessonGraded,
						Exercises: []domain.Exercise{
							mcq("ex_1_2_1", "My name is", "Me llamo",
								[]string{"Me llamo", "Te llamas", "Se llama", "Nos llamamos"},
								"'Me llamo' means 'My name is'."),
							fillBlank("ex_1_2_2", "Me ___ Juan (My name is Juan)", "llamo",
								"'Me llamo' means 'My name is'."),
							mcq("ex_1_2_3", "What is your name?", "¿Cómo te llamas?",
								[]string{"¿Cómo te llamas?", "¿Cómo estás?", "¿Qué tal?", "¿De dónde eres?"},
								"'¿Cómo te llamas?' means 'What is your name?'"),
							fillBlank("ex_1_2_4", "Soy de ___ (I am from)", "España",
								"'Soy de' means 'I am from'. España is Spain."),
							mcq("ex_1_2_5", "Where are you from?", "¿De dónde eres?",
								[]string{"¿De dónde eres?", "¿Dónde vives?", "¿Cómo estás?", "¿Qué tal?"},
								"'¿De dónde eres?' means 'Where are you from?'"),
							fillBlank("ex_1_2_6", "Tengo ___ años (I am ___ years old)", "veinte",
								"'Tengo veinte años' means 'I am twenty years old'."),
							mcq("ex_1_2_7", "Nice to meet you", "Mucho gusto",
								[]string{"Mucho gusto", "Hasta luego", "Buenos días", "Gracias"},
								"'Mucho gusto' means 'Nice to meet you'."),
							fillBlank("ex_1_2_8", "Encantado de ___ (Pleased to meet you)", "conocerte",
								"'Encantado de conocerte' means 'Pleased to meet you'."),
						},
					},
					{
						ID: "lesson_1_3", UnitID: "unit_1", Title: "Numbers 1-10",
						Description: "Learn numbers from one to ten", Order: 3,
						XPReward: 20, Type: domain.LessonGraded,
						Exercises: []domain.Exercise{
							mcq("ex_1_3_1", "One", "Uno",
								[]string{"Uno", "Dos", "Tres", "Cuatro"}, ""),
							mcq("ex_1_3_2", "Five", "Cinco",
								[]string{"Cuatro", "Cinco", "Seis", "Siete"}, ""),
							fillBlank("ex_1_3_3", "Tres más dos es ___ (Three plus two is five)", "cinco", ""),
							mcq("ex_1_3_4", "Ten", "Diez",
								[]string{"Ocho", "Nueve", "Diez", "Once"}, ""),
							fillBlank("ex_1_3_5", "Siete menos dos es ___ (Seven minus two is five)", "cinco", ""),
							mcq("ex_1_3_6", "Eight", "Ocho",
								[]string{"Seis", "Siete", "Ocho", "Nueve"}, ""),
							fillBlank("ex_1_3_7", "Dos por cuatro es ___ (Two times four is eight)", "ocho", ""),
							mcq("ex_1_3_8", "Nine", "Nueve",
								[]string{"Siete", "Ocho", "Nueve", "Diez"}, ""),
						},
					},
				},
			},
			{
				ID:          "unit_2",
				CourseID:    "course_spanish_101",
				Title:       "Unit 2: Food & Drinks",
				Description: "Learn vocabulary for food and drinks",
				Order:       2,
				Lessons: []domain.Lesson{
					{
						ID: "lesson_2_1", UnitID: "unit_2", Title: "Food Basics",
						Description: "Learn basic food vocabulary", Order: 1,
						XPReward: 20, Type: domain.LessonGraded,
						Exercises: []domain.Exercise{
							mcq("ex_2_1_1", "Bread", "Pan",
								[]string{"Pan", "Agua", "Leche", "Queso"}, ""),
							mcq("ex_2_1_2", "Water", "Agua",
								[]string{"Pan", "Agua", "Leche", "Queso"}, ""),
							fillBlank("ex_2_1_3", "Quiero ___ (I want bread)", "pan", ""),
							mcq("ex_2_1_4", "Milk", "Leche",
								[]string{"Pan", "Agua", "Leche", "Queso"}, ""),
							fillBlank("ex_2_1_5", "Necesito ___ (I need water)", "agua", ""),
							mcq("ex_2_1_6", "Cheese", "Queso",
								[]string{"Pan", "Agua", "Leche", "Queso"}, ""),
							fillBlank("ex_2_1_7", "Me gusta el ___ (I like cheese)", "queso", ""),
							mcq("ex_2_1_8", "Egg", "Huevo",
								[]string{"Huevo", "Carne", "Pescado", "Pollo"}, ""),
						},
					},
				},
			},
		},
	}
}

func mcq(id, question, answer string, options []string, explanation string) domain.Exercise {
	return domain.Exercise{
		ID:          id,
		Type:        domain.ExerciseMCQ,
		Prompt:      "Choose the correct translation:",
		Question:    question,
		Options:     options,
		Answer:      answer,
		Explanation: explanation,
	}
}

func fillBlank(id, question, answer, explanation string) domain.Exercise {
	return domain.Exercise{
		ID:          id,
		Type:        domain.ExerciseFillBlank,
		Prompt:      "Complete the sentence:",
		Question:    question,
		Answer:      answer,
		Explanation: explanation,
	}
}
