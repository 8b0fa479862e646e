package chatbot

// User-facing copy of the assistant. Kept in one place so the tone stays
// consistent and translations stay reviewable.

const welcomeMessage = `## 👋 Witaj w serwisie wsparcia technicznego Vet-Eye!

Jestem Agentem AI i moim zadaniem jest udzielenie wsparcia w celu rozwiązania Twoich problemów z urządzeniem wyprodukowanym przez Vet-Eye.

### Aby kontynuować naszą rozmowę potrzebuję Twojej zgody na:

1. Rozpoczęcie interakcji ze mną, jako Agentem AI. Musisz wiedzieć, że nie jestem człowiekiem, tylko systemem sztucznej inteligencji, który będzie przetwarzał informacje wprowadzone przez Ciebie podczas rozmowy w celu zdiagnozowania opisywanych przez Ciebie problemów technicznych i ich rozwiązania, a także

2. Przetwarzanie Twoich danych osobowych przez VetEye Sp. z o.o., jako Administrator danych osobowych, zgodnie z przepisami rozporządzenia RODO, w przypadku konieczności utworzenia zgłoszenia serwisowego.

### Informacje o przetwarzaniu danych:

* Twoje dane osobowe będą zbierane tylko wtedy, gdy nie uda się rozwiązać zgłoszonego problemu i konieczne będzie przygotowanie zlecenia serwisowego
* Twoje dane osobowe będą przetwarzane w celu przygotowania zlecenia serwisowego i jego późniejszej obsługi oraz kontaktu naszego serwisu w sprawie realizacji tego zlecenia
* Twoje dane osobowe będą przechowywane przez okres niezbędny do realizacji usługi oraz wymagany przepisami prawa
* Przysługuje Ci prawo dostępu do swoich danych, ich sprostowania, usunięcia, ograniczenia przetwarzania, a także ich przenoszenia oraz wniesienia sprzeciwu
* Masz prawo wniesienia skargi do Urzędu Ochrony Danych Osobowych, jeżeli Twoje dane osobowe będą przetwarzane niezgodnie z deklaracją Administratora Danych Osobowych
* Szczegółowe informacje znajdziesz w naszej Polityce Prywatności

**Czy wyrażasz zgodę na powyższe warunki? (tak/nie)**

*Uwaga: Brak Twojej zgody na którykolwiek z powyższych punktów, uniemożliwi rozpoczęcie naszej rozmowy, zdiagnozowanie problemu i uzyskanie wsparcia technicznego.*`

const consentAcceptedReply = `### Dziękuję za zgodę! 🙂

Aby pomóc Ci w diagnostyce, potrzebuję numeru seryjnego Twojego urządzenia. Pomoże mi to lepiej zrozumieć problem i pomóc Ci w jego rozwiązaniu i jednocześnie sprawdzić czy urządzenie jest objęte gwarancją.

**Proszę podaj numer seryjny w formacie: SN: XXXX**
(gdzie XXXX to właściwy numer seryjny urządzenia)`

const consentDeclinedReply = `### Rozumiem Twoją decyzję.

Niestety bez Twojej zgody na przetwarzanie danych osobowych i rozmowę z Agentem AI nie możemy kontynuować rozmowy ani udzielić wsparcia technicznego poprzez tego asystenta.

Jeśli nadal potrzebujesz pomocy z urządzeniem, prosimy o bezpośredni kontakt z naszym działem serwisu:

**Telefon:** %s
**E-mail:** %s

Nasi specjaliści są dostępni od poniedziałku do piątku w godzinach 8:00-16:00.

Dziękujemy za zrozumienie i życzymy miłego dnia!`

const consentClarifyReply = `### Przepraszam, ale aby kontynuować potrzebuję jasnej odpowiedzi.

Czy wyrażasz zgodę na przetwarzanie danych osobowych zgodnie z RODO w przypadku konieczności utworzenia zgłoszenia serwisowego?

**Proszę odpowiedz: tak lub nie**`

const needSerialReply = `### Potrzebuję numeru seryjnego Twojego urządzenia

Aby kontynuować diagnostykę, proszę podaj numer seryjny w formacie: SN: XXXX
(gdzie XXXX to właściwy numer seryjny urządzenia)

Numer seryjny znajduje się na naklejce na spodzie lub z tyłu urządzenia.`

const deviceVerifiedReply = `### ✅ Zweryfikowano urządzenie:

**Model:** %s
**Status gwarancji:** %s

Proszę opisać problem z urządzeniem.`

const deviceNotFoundReply = `### ❌ Nie znaleziono urządzenia

%s

Proszę sprawdzić i spróbować ponownie.`

const moreDetailsReply = `Dziękuję za zgłoszenie problemu. Aby lepiej Ci pomóc, potrzebuję nieco więcej szczegółów.

Czy mógłbyś opisać dokładniej, na czym polega problem z urządzeniem? Na przykład:
- Jakie objawy zauważyłeś?
- Kiedy problem się pojawił?
- Czy występuje w konkretnych sytuacjach?

Im więcej szczegółów podasz, tym lepiej będę mógł zdiagnozować problem.`

const resolutionQuestion = "**Czy powyższe instrukcje pomogły rozwiązać Twój problem? (tak/nie)**"

const resolvedReply = "Cieszę się, że udało się rozwiązać problem! Czy mogę jeszcze w czymś pomóc?"

const escalateToServiceReply = "Bardzo mi przykro, że nie udało się rozwiązać problemu zdalnie. W takim przypadku najlepszym rozwiązaniem będzie wizyta serwisowa. " +
	"Serwisant będzie mógł bezpośrednio zbadać urządzenie i zdiagnozować przyczynę problemu. Muszę poinformować, że wizyta serwisowa może okazać się płatna nawet w przypadku gdy urządzenie jest objęte gwarancją. Wszystko zależy od przyczyny problemu.\n\n" +
	"Czy chciałbyś umówić wizytę serwisową? (tak/nie)"

const scheduleOfferAcceptedReply = "Dziękuję. Aby umówić wizytę serwisową, potrzebuję sprawdzić dostępne terminy. Czy chcesz zobaczyć listę dostępnych terminów? (tak/nie)"

const scheduleDeclinedEndReply = "Rozumiem. Jeśli zmienisz zdanie lub problem będzie się powtarzał, proszę o ponowny kontakt. Czy mogę jeszcze w czymś pomóc?"

const scheduleClarifyReply = "Przepraszam, nie zrozumiałem odpowiedzi. Czy chcesz umówić wizytę serwisową? (tak/nie)"

const schedulingDeclinedReply = "Rozumiem. Jeśli zmienisz zdanie, możesz skontaktować się z nami telefonicznie lub przez email, aby umówić wizytę serwisową."

const slotsIntro = "Dostępne terminy:\n\n"

const slotsOutro = "Proszę wybrać termin wpisując jego numer (np. 1, 2, 3...) lub wpisać 'inne' jeśli żaden termin nie odpowiada."

const noSlotsReply = "Przepraszam, nie znaleziono żadnych dostępnych terminów w najbliższym czasie. Proszę spróbować później."

const pickFromListReply = "Proszę wybrać termin z listy powyżej wpisując numer (np. 1, 2, 3...)"

const customSlotContactReply = "Rozumiem, że żaden z proponowanych terminów nie odpowiada. Proszę podać preferowany termin w formacie 'DD.MM HH:MM' lub 'dzień tygodnia HH:MM':"

const slotNotNumberReply = "Proszę wybrać numer odpowiadający terminowi lub wpisać 'inne'."

const slotChosenReply = "Termin został wybrany. Teraz potrzebuję kilku informacji kontaktowych. Proszę podać imię i nazwisko osoby zgłaszającej problem:"

const showSlotsQuestion = "Czy chcesz zobaczyć listę dostępnych terminów? (tak/nie)"

const preferredSlotsIntro = "Znalazłem następujące dostępne terminy blisko Twojej preferencji:\n"

const preferredSlotsOutro = "\nProszę wybrać termin wpisując jego numer:"

const noPreferredSlotsReply = "Niestety, serwisanci nie mają wolnych terminów w podanym czasie. " +
	"Proszę podać inny preferowany termin lub wpisać 'pokaż wszystkie' aby zobaczyć wszystkie dostępne terminy:"

const badPreferredFormatReply = "Przepraszam, nie rozpoznaję formatu daty. Proszę podać datę w formacie 'DD.MM HH:MM' lub 'dzień tygodnia HH:MM':"

const askPhoneReply = "Dziękuję. Proszę podać numer telefonu kontaktowego:"

const badPhoneReply = "Nieprawidłowy numer telefonu. Proszę podać prawidłowy numer:"

const askEmailReply = "Dziękuję. Proszę podać adres email:"

const badEmailReply = "Nieprawidłowy adres email. Proszę podać prawidłowy adres:"

const askAddressReply = "Dziękuję. Proszę podać adres dla serwisantów:"

const confirmDataReply = `Proszę potwierdzić dane:

Imię i nazwisko: %s
Telefon: %s
Email: %s
Adres: %s
Termin: %s

Czy wszystkie dane są prawidłowe? (tak/nie)`

const collectRestartReply = "Przepraszam, wystąpił błąd przy zbieraniu danych. Spróbujmy jeszcze raz. Proszę podać imię i nazwisko:"

const bookedReply = "Dziękuję! Wizyta serwisowa została zaplanowana. Wkrótce otrzymasz potwierdzenie na podany adres email oraz telefon z działu serwisu w celu potwierdzenia terminu. Jeśli wizyta nie zostanie potwierdzona telefonicznie w ciągu 24 godzin, zostanie automatycznie anulowana. Będziemy kontaktować się z Tobą na wskazany przez Ciebie numer telefonu w ciągu 24 godzin."

const fixDataReply = "Rozumiem. Proszę podać poprawne dane."

const confirmClarifyReply = "Przepraszam, nie zrozumiałem odpowiedzi. Czy dane są poprawne? (tak/nie)"

const newConversationReply = "W czym jeszcze mogę pomóc?"

const goodbyeReply = "Dziękuję za skorzystanie z asystenta VetEye. Jeśli będziesz potrzebować pomocy, jestem tutaj do dyspozycji. Do widzenia! 👋"

const genericErrorReply = "Przepraszam, wystąpił błąd. Spróbuj ponownie lub skontaktuj się z serwisem."
